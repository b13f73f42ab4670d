package dataset

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"hermannm.dev/enumnames"
)

type ValueKind uint8

const (
	ValueKindNull ValueKind = iota + 1
	ValueKindText
	ValueKindNumber
	ValueKindBool
)

var valueKindMap = enumnames.NewMap(map[ValueKind]string{
	ValueKindNull:   "null",
	ValueKindText:   "text",
	ValueKindNumber: "number",
	ValueKindBool:   "bool",
})

func (kind ValueKind) IsValid() bool {
	return valueKindMap.ContainsEnumValue(kind)
}

func (kind ValueKind) String() string {
	return valueKindMap.GetNameOrFallback(kind, "INVALID_VALUE_KIND")
}

// Value is a single raw cell as produced by the CSV parser. The zero value is Null.
type Value struct {
	kind    ValueKind
	text    string
	number  float64
	boolean bool
}

func Null() Value {
	return Value{kind: ValueKindNull}
}

func Text(text string) Value {
	return Value{kind: ValueKindText, text: text}
}

func Number(number float64) Value {
	return Value{kind: ValueKindNumber, number: number}
}

func Bool(boolean bool) Value {
	return Value{kind: ValueKindBool, boolean: boolean}
}

func (value Value) Kind() ValueKind {
	if value.kind == 0 {
		return ValueKindNull
	}
	return value.kind
}

// IsEmpty is true for absent values and empty text.
func (value Value) IsEmpty() bool {
	switch value.Kind() {
	case ValueKindNull:
		return true
	case ValueKindText:
		return value.text == ""
	default:
		return false
	}
}

func (value Value) String() string {
	switch value.Kind() {
	case ValueKindText:
		return value.text
	case ValueKindNumber:
		return FormatNumber(value.number)
	case ValueKindBool:
		return strconv.FormatBool(value.boolean)
	default:
		return ""
	}
}

// Float returns the numeric value of numbers, and of text that is a complete decimal literal.
func (value Value) Float() (number float64, ok bool) {
	switch value.Kind() {
	case ValueKindNumber:
		return value.number, true
	case ValueKindText:
		return ParseDecimal(value.text)
	default:
		return 0, false
	}
}

// Bool returns the boolean, and whether the value is a boolean at all.
func (value Value) Bool() (boolean bool, ok bool) {
	if value.Kind() == ValueKindBool {
		return value.boolean, true
	}
	return false, false
}

var decimalPattern = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)

// ParseDecimal parses the whole (trimmed) string as a decimal number. Prefixes like "12abc", hex
// literals and NaN/Infinity are rejected.
func ParseDecimal(text string) (number float64, ok bool) {
	text = strings.TrimSpace(text)
	if !decimalPattern.MatchString(text) {
		return 0, false
	}

	number, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return number, true
}

// FormatNumber gives the shortest decimal representation of the number, without exponent.
func FormatNumber(number float64) string {
	return cast.ToString(number)
}

func (value Value) MarshalJSON() ([]byte, error) {
	switch value.Kind() {
	case ValueKindText:
		return json.Marshal(value.text)
	case ValueKindNumber:
		return json.Marshal(value.number)
	case ValueKindBool:
		return json.Marshal(value.boolean)
	default:
		return []byte("null"), nil
	}
}
