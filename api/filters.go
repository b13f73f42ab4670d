package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"hermannm.dev/csvexplorer/filters"
)

// filterRequest is an expression for text, number and boolean columns, or a from/to range for
// date columns.
type filterRequest struct {
	Expression string `json:"expression"`
	From       string `json:"from"`
	To         string `json:"to"`
}

func (body filterRequest) toFilter() filters.Filter {
	return filters.Filter{
		Expression: body.Expression,
		Range:      filters.DateRange{From: body.From, To: body.To},
	}
}

// Returns:
//   - JSON array of filters.Control, one for each selected column
func (api *CSVExplorerAPI) GetFilterControls(
	res http.ResponseWriter,
	req *http.Request,
	entry *sessionEntry,
) {
	controls, err := entry.session.FilterControls()
	if err != nil {
		sendError(res, err, "")
		return
	}

	sendJSON(res, controls)
}

// Expects:
//   - path parameter 'column': column to filter
//   - JSON body {"expression": "..."} or {"from": "YYYY-MM-DD", "to": "YYYY-MM-DD"}
//
// Returns:
//   - JSON-encoded session.View
func (api *CSVExplorerAPI) SetFilter(
	res http.ResponseWriter,
	req *http.Request,
	entry *sessionEntry,
) {
	var body filterRequest
	if err := decodeJSONBody(req, &body); err != nil {
		sendError(res, err, "")
		return
	}

	if err := entry.session.SetFilter(chi.URLParam(req, "column"), body.toFilter()); err != nil {
		sendError(res, err, "")
		return
	}

	sendJSON(res, entry.session.View())
}

func (api *CSVExplorerAPI) ClearFilter(
	res http.ResponseWriter,
	req *http.Request,
	entry *sessionEntry,
) {
	if err := entry.session.ClearFilter(chi.URLParam(req, "column")); err != nil {
		sendError(res, err, "")
		return
	}

	sendJSON(res, entry.session.View())
}

func (api *CSVExplorerAPI) ClearFilters(
	res http.ResponseWriter,
	req *http.Request,
	entry *sessionEntry,
) {
	if err := entry.session.ClearFilters(); err != nil {
		sendError(res, err, "")
		return
	}

	sendJSON(res, entry.session.View())
}
