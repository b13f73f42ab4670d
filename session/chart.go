package session

import (
	"hermannm.dev/csvexplorer/aggregation"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

// ChartRenderer draws charts for a front end. Teardown releases the previously rendered chart, and
// is always called before rendering a new one.
type ChartRenderer interface {
	Render(chart aggregation.Chart) error
	Teardown()
}

type noopRenderer struct{}

func (noopRenderer) Render(aggregation.Chart) error { return nil }

func (noopRenderer) Teardown() {}

// GenerateChart aggregates the filtered rows as configured by the spec, and renders the result.
// An invalid spec gives a ValidationError, and leaves the previous chart in place. If the
// aggregation gives no data, the previous chart is torn down and ErrNoChartData is returned.
func (session *Session) GenerateChart(spec aggregation.Spec) (aggregation.Chart, error) {
	if !session.IsLoaded() {
		return aggregation.Chart{}, ErrNoDataset
	}
	if err := spec.Validate(session.dataset.Columns); err != nil {
		return aggregation.Chart{}, newValidationError(err, "invalid chart configuration")
	}

	session.renderer.Teardown()

	chart := aggregation.Build(session.filteredRows, spec)
	if !chart.HasData() {
		return chart, ErrNoChartData
	}

	log.Debugf("generated %v chart '%s' with %d points", chart.Kind, chart.Title, len(chart.Points))

	if err := session.renderer.Render(chart); err != nil {
		return aggregation.Chart{}, wrap.Errorf(err, "failed to render %v chart", chart.Kind)
	}
	return chart, nil
}
