package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"hermannm.dev/csvexplorer/csv"
	"hermannm.dev/csvexplorer/datatypes"
	"hermannm.dev/csvexplorer/session"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

type sessionHandler func(res http.ResponseWriter, req *http.Request, entry *sessionEntry)

// withSession looks up the session from the 'sessionID' path parameter, and holds its lock while
// the handler runs.
func (api *CSVExplorerAPI) withSession(handler sessionHandler) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		id, err := sessionIDFromRequest(req)
		if err != nil {
			sendError(res, err, "")
			return
		}

		entry, err := api.sessions.get(id)
		if err != nil {
			sendError(res, err, "")
			return
		}

		entry.lock.Lock()
		defer entry.lock.Unlock()

		handler(res, req, entry)
	}
}

func sessionIDFromRequest(req *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(req, "sessionID"))
	if err != nil {
		return uuid.UUID{}, wrap.Error(ErrSessionNotFound, "invalid session ID")
	}
	return id, nil
}

type createSessionResponse struct {
	ID      uuid.UUID        `json:"id"`
	Rows    int              `json:"rows"`
	Columns int              `json:"columns"`
	Schema  datatypes.Schema `json:"schema"`
}

// Expects:
//   - multipart form field 'csvFile': CSV file to explore
//
// Returns (201):
//   - JSON-encoded createSessionResponse
func (api *CSVExplorerAPI) CreateSession(res http.ResponseWriter, req *http.Request) {
	if req.ContentLength > api.config.MaxUploadBytes {
		sendErrorWithStatus(
			res,
			http.StatusRequestEntityTooLarge,
			nil,
			fmt.Sprintf("uploads are limited to %d bytes", api.config.MaxUploadBytes),
		)
		return
	}
	req.Body = http.MaxBytesReader(res, req.Body, api.config.MaxUploadBytes)

	csvFile, _, err := req.FormFile("csvFile")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			sendErrorWithStatus(res, http.StatusRequestEntityTooLarge, err, "upload too large")
		} else {
			sendClientError(res, err, "failed to get CSV file from request")
		}
		return
	}
	defer csvFile.Close()

	renderer := &jsonChartRenderer{}
	explorer := session.New(
		session.WithParser(csv.NewParser(api.config.DelimiterLinesToCheck)),
		session.WithRenderer(renderer),
		session.WithRowsPerPage(api.config.DefaultRowsPerPage),
	)

	if err := explorer.Load(csvFile); err != nil {
		sendError(res, err, "failed to load uploaded CSV file")
		return
	}

	id := api.sessions.add(&sessionEntry{session: explorer, renderer: renderer})
	log.Infof("created session %s (%d active)", id, api.sessions.count())

	sendJSONWithStatus(res, http.StatusCreated, createSessionResponse{
		ID:      id,
		Rows:    len(explorer.Dataset().Rows),
		Columns: len(explorer.Dataset().Columns),
		Schema:  explorer.Schema(),
	})
}

func (api *CSVExplorerAPI) DeleteSession(res http.ResponseWriter, req *http.Request) {
	id, err := sessionIDFromRequest(req)
	if err != nil {
		sendError(res, err, "")
		return
	}

	if err := api.sessions.remove(id); err != nil {
		sendError(res, err, "")
		return
	}

	log.Infof("deleted session %s", id)
	res.WriteHeader(http.StatusNoContent)
}

// Returns:
//   - JSON-encoded datatypes.Schema
func (api *CSVExplorerAPI) GetSchema(
	res http.ResponseWriter,
	req *http.Request,
	entry *sessionEntry,
) {
	sendJSON(res, entry.session.Schema())
}

type selectColumnsRequest struct {
	Columns []string `json:"columns"`
}

// Expects:
//   - JSON body {"columns": [...]}: columns to show, in order
//
// Returns:
//   - JSON-encoded session.View
func (api *CSVExplorerAPI) SelectColumns(
	res http.ResponseWriter,
	req *http.Request,
	entry *sessionEntry,
) {
	var body selectColumnsRequest
	if err := decodeJSONBody(req, &body); err != nil {
		sendError(res, err, "")
		return
	}

	if err := entry.session.SelectColumns(body.Columns); err != nil {
		sendError(res, err, "")
		return
	}

	sendJSON(res, entry.session.View())
}

// Returns:
//   - JSON-encoded session.View
func (api *CSVExplorerAPI) GetView(
	res http.ResponseWriter,
	req *http.Request,
	entry *sessionEntry,
) {
	sendJSON(res, entry.session.View())
}

// Returns:
//   - the filtered rows as a CSV attachment, with only the selected columns
func (api *CSVExplorerAPI) ExportCSV(
	res http.ResponseWriter,
	req *http.Request,
	entry *sessionEntry,
) {
	res.Header().Set("Content-Type", "text/csv")
	res.Header().Set(
		"Content-Disposition",
		`attachment; filename="`+session.ExportFileName+`"`,
	)

	if err := entry.session.Export(res); err != nil {
		sendError(res, err, "failed to export CSV")
		return
	}
}
