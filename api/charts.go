package api

import (
	"errors"
	"net/http"

	"hermannm.dev/csvexplorer/aggregation"
	"hermannm.dev/csvexplorer/session"
)

// jsonChartRenderer keeps the last rendered chart, so it can be fetched by the client.
type jsonChartRenderer struct {
	chart    aggregation.Chart
	rendered bool
}

func (renderer *jsonChartRenderer) Render(chart aggregation.Chart) error {
	renderer.chart = chart
	renderer.rendered = true
	return nil
}

func (renderer *jsonChartRenderer) Teardown() {
	renderer.chart = aggregation.Chart{}
	renderer.rendered = false
}

type chartRequest struct {
	Kind        aggregation.ChartKind `json:"kind"`
	GroupBy     string                `json:"groupBy"`
	Measure     string                `json:"measure"`
	Function    aggregation.Function  `json:"function"`
	ValueColumn string                `json:"valueColumn"`
	// "all", a positive number, or empty for the default.
	Limit string `json:"limit"`
}

func (body chartRequest) toSpec() (aggregation.Spec, error) {
	spec := aggregation.Spec{
		Kind:        body.Kind,
		GroupBy:     body.GroupBy,
		Measure:     body.Measure,
		Function:    body.Function,
		ValueColumn: body.ValueColumn,
	}

	if body.Kind == aggregation.ChartKindPie {
		limit, err := aggregation.ParseLimit(body.Limit)
		if err != nil {
			return aggregation.Spec{}, session.ValidationError{
				Message: "invalid chart limit",
				Cause:   err,
			}
		}
		spec.Limit = limit
	}

	return spec, nil
}

// Expects:
//   - JSON body with chart kind ("bar" or "pie"), groupBy, and measure/function for bar charts or
//     valueColumn/limit for pie charts
//
// Returns:
//   - JSON-encoded aggregation.Chart
//   - 422 if the configuration gives no data
func (api *CSVExplorerAPI) GenerateChart(
	res http.ResponseWriter,
	req *http.Request,
	entry *sessionEntry,
) {
	var body chartRequest
	if err := decodeJSONBody(req, &body); err != nil {
		sendError(res, err, "")
		return
	}

	spec, err := body.toSpec()
	if err != nil {
		sendError(res, err, "")
		return
	}

	chart, err := entry.session.GenerateChart(spec)
	if err != nil {
		if errors.Is(err, session.ErrNoChartData) {
			sendErrorWithStatus(res, http.StatusUnprocessableEntity, err, "")
			return
		}
		sendError(res, err, "")
		return
	}

	sendJSON(res, chart)
}

// Returns:
//   - JSON-encoded aggregation.Chart that was last generated
//   - 404 if there is no chart
func (api *CSVExplorerAPI) GetChart(
	res http.ResponseWriter,
	req *http.Request,
	entry *sessionEntry,
) {
	if !entry.renderer.rendered {
		sendErrorWithStatus(res, http.StatusNotFound, nil, "no chart has been generated")
		return
	}

	sendJSON(res, entry.renderer.chart)
}
