package csv

import (
	"bufio"
	"io"
	"strings"

	"hermannm.dev/wrap"
)

var DefaultDelimitersToCheck = []rune{',', ';', '\t', ' ', '|'}

const maxLineLength = 16 * 1024 * 1024

// DeduceFieldDelimiter picks the candidate delimiter that occurs most consistently across the first
// lines of the file. Delimiters inside quoted fields are not counted, and blank lines are skipped.
func DeduceFieldDelimiter(
	csvFile io.ReadSeeker,
	maxLinesToCheck int,
	delimitersToCheck []rune,
) (delimiter rune, err error) {
	// Resets reader position in file before returning, so its data can be read subsequently
	defer func() {
		if _, seekErr := csvFile.Seek(0, io.SeekStart); seekErr != nil && err == nil {
			err = wrap.Error(seekErr, "failed to reset CSV reader after deducing field delimiter")
		}
	}()

	if len(delimitersToCheck) == 0 {
		delimitersToCheck = DefaultDelimitersToCheck
	}

	candidates := newDelimiterCandidateList(delimitersToCheck)

	scanner := bufio.NewScanner(csvFile)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for linesChecked := 0; linesChecked < maxLinesToCheck && scanner.Scan(); {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		for i, candidate := range candidates {
			candidate.updateCounts(line)
			candidates[i] = candidate
		}
		linesChecked++
	}
	if err := scanner.Err(); err != nil {
		return 0, wrap.Error(err, "failed to scan CSV lines")
	}

	return candidates.getBestCandidate(), nil
}

type delimiterCandidate struct {
	delimiter    rune
	highestCount int
	lowestCount  int
}

func (candidate *delimiterCandidate) updateCounts(line string) {
	count := 0
	inQuotes := false
	for _, char := range line {
		switch {
		case char == '"':
			inQuotes = !inQuotes
		case char == candidate.delimiter && !inQuotes:
			count++
		}
	}

	if candidate.highestCount == -1 || candidate.highestCount < count {
		candidate.highestCount = count
	}
	if candidate.lowestCount == -1 || candidate.lowestCount > count {
		candidate.lowestCount = count
	}
}

type delimiterCandidateList []delimiterCandidate

func newDelimiterCandidateList(delimitersToCheck []rune) delimiterCandidateList {
	list := make([]delimiterCandidate, 0, len(delimitersToCheck))

	for _, delimiter := range delimitersToCheck {
		list = append(
			list,
			delimiterCandidate{delimiter: delimiter, highestCount: -1, lowestCount: -1},
		)
	}

	return list
}

// Falls back to the first candidate (a comma by default) when no candidate occurs at all, which
// is the case for single-column files.
func (list delimiterCandidateList) getBestCandidate() rune {
	if len(list) == 0 {
		return ','
	}

	bestCandidate := list[0]

	for _, candidate := range list[1:] {
		equalHighLow := candidate.highestCount == candidate.lowestCount
		bestEqualHighLow := bestCandidate.highestCount == bestCandidate.lowestCount
		higherThanBest := candidate.highestCount > bestCandidate.highestCount

		equalAndHigher := equalHighLow && bestEqualHighLow && higherThanBest

		moreEqual := equalHighLow && !bestEqualHighLow && candidate.highestCount > 0

		unequalButHigher := !equalHighLow && !bestEqualHighLow &&
			candidate.highestCount > bestCandidate.highestCount &&
			(candidate.lowestCount != 0 || bestCandidate.lowestCount == 0)

		if equalAndHigher || moreEqual || unequalButHigher {
			bestCandidate = candidate
		}
	}

	if bestCandidate.highestCount <= 0 {
		return list[0].delimiter
	}
	return bestCandidate.delimiter
}
