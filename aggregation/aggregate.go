package aggregation

import (
	"slices"

	"hermannm.dev/csvexplorer/dataset"
)

// UnknownGroup labels rows whose group-by cell is empty.
const UnknownGroup = "Unknown"

type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type group struct {
	label  string
	values []float64
	sum    float64
	count  int
}

// groups keeps groups in the order they were first seen.
type groups struct {
	list    []*group
	byLabel map[string]*group
}

func newGroups() groups {
	return groups{list: nil, byLabel: make(map[string]*group)}
}

func (groups *groups) getOrCreate(label string) *group {
	if existing, ok := groups.byLabel[label]; ok {
		return existing
	}

	created := &group{label: label}
	groups.byLabel[label] = created
	groups.list = append(groups.list, created)
	return created
}

func (group *group) add(value float64) {
	group.values = append(group.values, value)
	group.sum += value
	group.count++
}

func groupLabel(row dataset.Row, groupByColumn string) string {
	cell := row.Get(groupByColumn)
	if cell.IsEmpty() {
		return UnknownGroup
	}
	return cell.String()
}

func measureValue(row dataset.Row, column string) float64 {
	if value, ok := row.Get(column).Float(); ok {
		return value
	}
	return 0
}

// AggregateBar groups rows by the group-by column, and reduces the measure column of each group
// with the given function. Measure cells that are not numbers count as 0. Groups are returned in
// the order they first appear in the rows.
func AggregateBar(
	rows []dataset.Row,
	groupByColumn string,
	measureColumn string,
	function Function,
) []Point {
	groups := newGroups()
	for _, row := range rows {
		groups.getOrCreate(groupLabel(row, groupByColumn)).add(measureValue(row, measureColumn))
	}

	points := make([]Point, 0, len(groups.list))
	for _, group := range groups.list {
		points = append(points, Point{Label: group.label, Value: group.reduce(function)})
	}
	return points
}

// Unrecognized functions fall back to sum.
func (group *group) reduce(function Function) float64 {
	switch function {
	case FunctionAverage:
		return group.sum / float64(group.count)
	case FunctionCount:
		return float64(group.count)
	case FunctionMax:
		return slices.Max(group.values)
	case FunctionMin:
		return slices.Min(group.values)
	default:
		return group.sum
	}
}

// AggregatePie groups rows by the group-by column, with the row count of each group as its value,
// or the sum of valueColumn if given. Points are sorted by value in descending order (keeping the
// order of first appearance between equal values), and cut to the given limit if above 0.
func AggregatePie(
	rows []dataset.Row,
	groupByColumn string,
	valueColumn string,
	limit int,
) []Point {
	groups := newGroups()
	for _, row := range rows {
		group := groups.getOrCreate(groupLabel(row, groupByColumn))
		if valueColumn == "" {
			group.add(0)
		} else {
			group.add(measureValue(row, valueColumn))
		}
	}

	points := make([]Point, 0, len(groups.list))
	for _, group := range groups.list {
		value := group.sum
		if valueColumn == "" {
			value = float64(group.count)
		}
		points = append(points, Point{Label: group.label, Value: value})
	}

	slices.SortStableFunc(points, func(point1 Point, point2 Point) int {
		switch {
		case point1.Value > point2.Value:
			return -1
		case point1.Value < point2.Value:
			return 1
		default:
			return 0
		}
	})

	if limit > 0 && len(points) > limit {
		points = points[:limit]
	}
	return points
}
