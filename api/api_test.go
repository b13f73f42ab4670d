package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/csvexplorer/api"
)

const salesCSV = `region;sales;date
North;100;2024-01-15
South;40;2024-02-01
North;50;2024-02-20
East;70;2024-03-05
`

func newTestAPI() *api.CSVExplorerAPI {
	return api.NewCSVExplorerAPI(api.Config{
		Port:                  "0",
		MaxUploadBytes:        1024 * 1024,
		DefaultRowsPerPage:    25,
		DelimiterLinesToCheck: 20,
	})
}

func uploadRequest(t *testing.T, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("csvFile", "sales.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/sessions", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

// send makes a request to the handler, with the body encoded as JSON if not nil.
func send(
	t *testing.T,
	handler http.Handler,
	method string,
	path string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()

	if body == nil {
		return serve(handler, httptest.NewRequest(method, path, nil))
	}

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	return serve(handler, req)
}

func createSession(t *testing.T, handler http.Handler) string {
	t.Helper()

	res := serve(handler, uploadRequest(t, salesCSV))
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	var created struct {
		ID      string `json:"id"`
		Rows    int    `json:"rows"`
		Columns int    `json:"columns"`
		Schema  struct {
			Columns []struct {
				Name string `json:"name"`
				Type string `json:"type"`
			} `json:"columns"`
		} `json:"schema"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))

	assert.Equal(t, 4, created.Rows)
	assert.Equal(t, 3, created.Columns)
	require.Len(t, created.Schema.Columns, 3)
	assert.Equal(t, "number", created.Schema.Columns[1].Type)
	assert.Equal(t, "date", created.Schema.Columns[2].Type)

	return created.ID
}

type viewResponse struct {
	Columns []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"columns"`
	Rows [][]any `json:"rows"`
	Page struct {
		CurrentPage int `json:"currentPage"`
		TotalPages  int `json:"totalPages"`
		RowsPerPage int `json:"rowsPerPage"`
	} `json:"page"`
	DatasetRows   int `json:"datasetRows"`
	FilteredRows  int `json:"filteredRows"`
	ActiveFilters int `json:"activeFilters"`
}

func sendForView(
	t *testing.T,
	handler http.Handler,
	method string,
	path string,
	body any,
) viewResponse {
	t.Helper()
	return decodeView(t, send(t, handler, method, path, body))
}

func decodeView(t *testing.T, res *httptest.ResponseRecorder) viewResponse {
	t.Helper()

	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var view viewResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &view))
	return view
}

func TestCreateSession(t *testing.T) {
	handler := newTestAPI()
	id := createSession(t, handler)

	view := sendForView(t, handler, http.MethodGet, "/sessions/"+id+"/view", nil)
	assert.Equal(t, 4, view.DatasetRows)
	assert.Equal(t, 4, view.FilteredRows)
	assert.Equal(t, 1, view.Page.CurrentPage)
	require.Len(t, view.Rows, 4)
	assert.Equal(t, []any{"North", 100.0, "2024-01-15"}, view.Rows[0])
}

func TestCreateSessionErrors(t *testing.T) {
	handler := newTestAPI()

	res := serve(handler, uploadRequest(t, ""))
	assert.Equal(t, http.StatusBadRequest, res.Code)

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader("no form"))
	res = serve(handler, req)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestCreateSessionTooLarge(t *testing.T) {
	handler := api.NewCSVExplorerAPI(api.Config{
		Port:                  "0",
		MaxUploadBytes:        64,
		DefaultRowsPerPage:    25,
		DelimiterLinesToCheck: 20,
	})

	res := serve(handler, uploadRequest(t, strings.Repeat(salesCSV, 10)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, res.Code)
}

func TestUnknownSession(t *testing.T) {
	handler := newTestAPI()

	for _, path := range []string{
		"/sessions/not-a-uuid/view",
		"/sessions/6f1c1c0e-3d4a-4a53-9a43-3f8f7a0b5c11/view",
	} {
		res := send(t, handler, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, res.Code, path)
	}
}

func TestDeleteSession(t *testing.T) {
	handler := newTestAPI()
	id := createSession(t, handler)

	res := send(t, handler, http.MethodDelete, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, res.Code)

	res = send(t, handler, http.MethodGet, "/sessions/"+id+"/schema", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = send(t, handler, http.MethodDelete, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestFilters(t *testing.T) {
	handler := newTestAPI()
	id := createSession(t, handler)
	filtersPath := "/sessions/" + id + "/filters"

	view := sendForView(t, handler, http.MethodPut, filtersPath+"/sales", map[string]any{
		"expression": ">=50",
	})
	assert.Equal(t, 3, view.FilteredRows)

	view = sendForView(t, handler, http.MethodPut, filtersPath+"/date", map[string]any{
		"from": "2024-02-01",
		"to":   "2024-02-29",
	})
	assert.Equal(t, 1, view.FilteredRows)
	assert.Equal(t, 2, view.ActiveFilters)

	res := send(t, handler, http.MethodPut, filtersPath+"/date", map[string]any{
		"from": "yesterday",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = send(t, handler, http.MethodPut, filtersPath+"/missing", map[string]any{
		"expression": "x",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	view = sendForView(t, handler, http.MethodDelete, filtersPath+"/date", nil)
	assert.Equal(t, 3, view.FilteredRows)

	view = sendForView(t, handler, http.MethodDelete, filtersPath, nil)
	assert.Equal(t, 4, view.FilteredRows)
	assert.Equal(t, 0, view.ActiveFilters)
}

func TestFilterControls(t *testing.T) {
	handler := newTestAPI()
	id := createSession(t, handler)

	res := send(t, handler, http.MethodGet, "/sessions/"+id+"/filters", nil)
	require.Equal(t, http.StatusOK, res.Code)

	var controls []struct {
		Column string `json:"column"`
		Kind   string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &controls))
	require.Len(t, controls, 3)
	assert.Equal(t, "substring", controls[0].Kind)
	assert.Equal(t, "comparison", controls[1].Kind)
	assert.Equal(t, "date_range", controls[2].Kind)
}

func TestColumnsAndPages(t *testing.T) {
	handler := newTestAPI()
	id := createSession(t, handler)
	sessionPath := "/sessions/" + id

	view := sendForView(t, handler, http.MethodPut, sessionPath+"/columns", map[string]any{
		"columns": []string{"sales"},
	})
	require.Len(t, view.Columns, 1)
	assert.Equal(t, "sales", view.Columns[0].Name)
	assert.Equal(t, []any{100.0}, view.Rows[0])

	res := send(t, handler, http.MethodPut, sessionPath+"/columns", map[string]any{
		"columns": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	view = sendForView(t, handler, http.MethodPut, sessionPath+"/rows-per-page", map[string]any{
		"rowsPerPage": 10,
	})
	assert.Equal(t, 10, view.Page.RowsPerPage)

	res = send(t, handler, http.MethodPut, sessionPath+"/rows-per-page", map[string]any{
		"rowsPerPage": 3,
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	view = sendForView(t, handler, http.MethodPost, sessionPath+"/page", map[string]any{
		"navigation": "next",
	})
	assert.Equal(t, 1, view.Page.CurrentPage, "single page should not advance")

	view = sendForView(t, handler, http.MethodPost, sessionPath+"/page", map[string]any{
		"page": 7,
	})
	assert.Equal(t, 1, view.Page.CurrentPage)

	res = send(t, handler, http.MethodPost, sessionPath+"/page", map[string]any{
		"navigation": "sideways",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = send(t, handler, http.MethodPost, sessionPath+"/page", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

type chartResponse struct {
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Points []struct {
		Label string  `json:"label"`
		Value float64 `json:"value"`
	} `json:"points"`
}

func TestCharts(t *testing.T) {
	handler := newTestAPI()
	id := createSession(t, handler)
	sessionPath := "/sessions/" + id

	res := send(t, handler, http.MethodGet, sessionPath+"/chart", nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = send(t, handler, http.MethodPost, sessionPath+"/charts", map[string]any{
		"kind":     "bar",
		"groupBy":  "region",
		"measure":  "sales",
		"function": "avg",
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var chart chartResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &chart))
	assert.Equal(t, "bar", chart.Kind)
	assert.Equal(t, "Avg of sales by region", chart.Title)
	require.Len(t, chart.Points, 3)
	assert.Equal(t, "North", chart.Points[0].Label)
	assert.Equal(t, 75.0, chart.Points[0].Value)

	res = send(t, handler, http.MethodGet, sessionPath+"/chart", nil)
	require.Equal(t, http.StatusOK, res.Code)
	var lastChart chartResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &lastChart))
	assert.Equal(t, chart, lastChart)

	res = send(t, handler, http.MethodPost, sessionPath+"/charts", map[string]any{
		"kind":    "pie",
		"groupBy": "region",
		"limit":   "1",
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &chart))
	require.Len(t, chart.Points, 1)
	assert.Equal(t, "North", chart.Points[0].Label)
	assert.Equal(t, 2.0, chart.Points[0].Value)

	res = send(t, handler, http.MethodPost, sessionPath+"/charts", map[string]any{
		"kind":    "bar",
		"groupBy": "region",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = send(t, handler, http.MethodPost, sessionPath+"/charts", map[string]any{
		"kind":    "pie",
		"groupBy": "region",
		"limit":   "none",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = send(t, handler, http.MethodPut, sessionPath+"/filters/region", map[string]any{
		"expression": "west",
	})
	require.Equal(t, http.StatusOK, res.Code)

	res = send(t, handler, http.MethodPost, sessionPath+"/charts", map[string]any{
		"kind":    "pie",
		"groupBy": "region",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.Code)

	res = send(t, handler, http.MethodGet, sessionPath+"/chart", nil)
	assert.Equal(t, http.StatusNotFound, res.Code, "previous chart should be torn down")
}

func TestExport(t *testing.T) {
	handler := newTestAPI()
	id := createSession(t, handler)
	sessionPath := "/sessions/" + id

	res := send(t, handler, http.MethodPut, sessionPath+"/columns", map[string]any{
		"columns": []string{"region", "sales"},
	})
	require.Equal(t, http.StatusOK, res.Code)
	res = send(t, handler, http.MethodPut, sessionPath+"/filters/region", map[string]any{
		"expression": "north",
	})
	require.Equal(t, http.StatusOK, res.Code)

	res = send(t, handler, http.MethodGet, sessionPath+"/export", nil)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "text/csv", res.Header().Get("Content-Type"))
	assert.Contains(t, res.Header().Get("Content-Disposition"), "filtered-data.csv")
	assert.Equal(t, "region,sales\nNorth,100\nNorth,50\n", res.Body.String())
}
