package aggregation

import (
	"strconv"
	"strings"

	"hermannm.dev/enumnames"
	"hermannm.dev/wrap"
)

type Function int8

const (
	FunctionSum Function = iota + 1
	FunctionAverage
	FunctionCount
	FunctionMax
	FunctionMin
)

var functionMap = enumnames.NewMap(map[Function]string{
	FunctionSum:     "sum",
	FunctionAverage: "avg",
	FunctionCount:   "count",
	FunctionMax:     "max",
	FunctionMin:     "min",
})

func (function Function) IsValid() bool {
	return functionMap.ContainsEnumValue(function)
}

func (function Function) String() string {
	return functionMap.GetNameOrFallback(function, "INVALID_AGGREGATION_FUNCTION")
}

func (function Function) MarshalJSON() ([]byte, error) {
	return functionMap.MarshalToNameJSON(function)
}

func (function *Function) UnmarshalJSON(bytes []byte) error {
	return functionMap.UnmarshalFromNameJSON(bytes, function)
}

func ParseFunction(name string) (Function, error) {
	var function Function
	if err := function.UnmarshalJSON(quotedLower(name)); err != nil {
		return 0, wrap.Errorf(err, "invalid aggregation function '%s'", name)
	}
	return function, nil
}

type ChartKind int8

const (
	ChartKindBar ChartKind = iota + 1
	ChartKindPie
)

var chartKindMap = enumnames.NewMap(map[ChartKind]string{
	ChartKindBar: "bar",
	ChartKindPie: "pie",
})

func (kind ChartKind) IsValid() bool {
	return chartKindMap.ContainsEnumValue(kind)
}

func (kind ChartKind) String() string {
	return chartKindMap.GetNameOrFallback(kind, "INVALID_CHART_KIND")
}

func (kind ChartKind) MarshalJSON() ([]byte, error) {
	return chartKindMap.MarshalToNameJSON(kind)
}

func (kind *ChartKind) UnmarshalJSON(bytes []byte) error {
	return chartKindMap.UnmarshalFromNameJSON(bytes, kind)
}

func ParseChartKind(name string) (ChartKind, error) {
	var kind ChartKind
	if err := kind.UnmarshalJSON(quotedLower(name)); err != nil {
		return 0, wrap.Errorf(err, "invalid chart kind '%s'", name)
	}
	return kind, nil
}

func quotedLower(name string) []byte {
	return []byte(strconv.Quote(strings.ToLower(strings.TrimSpace(name))))
}
