package filters

import (
	"regexp"
	"strconv"
	"strings"

	"hermannm.dev/csvexplorer/dataset"
)

// MatchesNumberFilter checks a numeric cell against a filter expression, which is one of (checked
// in this order):
//   - a range "min-max", inclusive at both ends
//   - a comparison ">=x", "<=x", ">x" or "<x"
//   - a number, matching cells equal to it or whose decimal form contains it ("3.1" matches 3.14)
//
// Numbers in the expression are read from the leading decimal literal of each part, so "10 units"
// reads as 10. A malformed range or comparison falls through to the next form. Ranges are split
// on '-', so ranges with negative bounds ("-10--1") are not supported.
func MatchesNumberFilter(cell dataset.Value, expression string) bool {
	cellNumber, ok := cell.Float()
	if !ok {
		return false
	}

	expression = strings.TrimSpace(expression)

	if strings.Contains(expression, "-") && !strings.HasPrefix(expression, "-") {
		// Parts after the second are ignored: "5-20-30" is the range 5-20.
		bounds := strings.Split(expression, "-")
		lower, lowerOK := parseLeadingNumber(bounds[0])
		upper, upperOK := parseLeadingNumber(bounds[1])
		if lowerOK && upperOK {
			return cellNumber >= lower && cellNumber <= upper
		}
	}

	// Two-character operators must be checked before their one-character prefixes.
	for _, comparison := range comparisons {
		thresholdText, found := strings.CutPrefix(expression, comparison.operator)
		if !found {
			continue
		}
		if threshold, ok := parseLeadingNumber(thresholdText); ok {
			return comparison.matches(cellNumber, threshold)
		}
	}

	filterNumber, ok := parseLeadingNumber(expression)
	if !ok {
		return false
	}
	if cellNumber == filterNumber {
		return true
	}
	return strings.Contains(dataset.FormatNumber(cellNumber), expression)
}

var leadingNumberPattern = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)

// parseLeadingNumber parses the longest decimal literal at the start of the trimmed text, ignoring
// whatever follows it. Unlike dataset.ParseDecimal, "12abc" gives 12.
func parseLeadingNumber(text string) (number float64, ok bool) {
	literal := leadingNumberPattern.FindString(strings.TrimSpace(text))
	if literal == "" {
		return 0, false
	}

	number, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return 0, false
	}
	return number, true
}

type comparison struct {
	operator string
	matches  func(cell float64, threshold float64) bool
}

var comparisons = []comparison{
	{">=", func(cell, threshold float64) bool { return cell >= threshold }},
	{"<=", func(cell, threshold float64) bool { return cell <= threshold }},
	{">", func(cell, threshold float64) bool { return cell > threshold }},
	{"<", func(cell, threshold float64) bool { return cell < threshold }},
}
