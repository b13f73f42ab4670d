package api

import (
	"net/http"

	"hermannm.dev/csvexplorer/pagination"
	"hermannm.dev/csvexplorer/session"
)

type rowsPerPageRequest struct {
	RowsPerPage int `json:"rowsPerPage"`
}

// Expects:
//   - JSON body {"rowsPerPage": 10 | 25 | 50 | 100}
//
// Returns:
//   - JSON-encoded session.View, on the first page
func (api *CSVExplorerAPI) SetRowsPerPage(
	res http.ResponseWriter,
	req *http.Request,
	entry *sessionEntry,
) {
	var body rowsPerPageRequest
	if err := decodeJSONBody(req, &body); err != nil {
		sendError(res, err, "")
		return
	}

	if err := entry.session.SetRowsPerPage(body.RowsPerPage); err != nil {
		sendError(res, err, "")
		return
	}

	sendJSON(res, entry.session.View())
}

type pageRequest struct {
	Navigation string `json:"navigation,omitempty"`
	Page       int    `json:"page,omitempty"`
}

// Expects:
//   - JSON body {"navigation": "first" | "prev" | "next" | "last"} or {"page": n}
//
// Returns:
//   - JSON-encoded session.View
func (api *CSVExplorerAPI) ChangePage(
	res http.ResponseWriter,
	req *http.Request,
	entry *sessionEntry,
) {
	var body pageRequest
	if err := decodeJSONBody(req, &body); err != nil {
		sendError(res, err, "")
		return
	}

	switch {
	case body.Navigation != "":
		navigation, err := pagination.ParseNavigation(body.Navigation)
		if err != nil {
			sendError(res, session.ValidationError{Message: "invalid navigation", Cause: err}, "")
			return
		}
		if err := entry.session.Navigate(navigation); err != nil {
			sendError(res, err, "")
			return
		}
	case body.Page != 0:
		entry.session.GoToPage(body.Page)
	default:
		sendClientError(res, nil, "expected 'navigation' or 'page' in request body")
		return
	}

	sendJSON(res, entry.session.View())
}
