package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/csvexplorer/pagination"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name        string
		totalRows   int
		rowsPerPage int
		currentPage int
		expected    pagination.Page
		summary     string
		label       string
	}{
		{
			name:        "first page",
			totalRows:   101,
			rowsPerPage: 25,
			currentPage: 1,
			expected: pagination.Page{
				CurrentPage:  1,
				RowsPerPage:  25,
				TotalRows:    101,
				TotalPages:   5,
				StartIndex:   0,
				EndIndex:     25,
				FirstEnabled: false,
				PrevEnabled:  false,
				NextEnabled:  true,
				LastEnabled:  true,
			},
			summary: "Showing 1-25 of 101 records",
			label:   "Page 1 of 5",
		},
		{
			name:        "last partial page",
			totalRows:   101,
			rowsPerPage: 25,
			currentPage: 5,
			expected: pagination.Page{
				CurrentPage:  5,
				RowsPerPage:  25,
				TotalRows:    101,
				TotalPages:   5,
				StartIndex:   100,
				EndIndex:     101,
				FirstEnabled: true,
				PrevEnabled:  true,
				NextEnabled:  false,
				LastEnabled:  false,
			},
			summary: "Showing 101-101 of 101 records",
			label:   "Page 5 of 5",
		},
		{
			name:        "no rows",
			totalRows:   0,
			rowsPerPage: 10,
			currentPage: 1,
			expected: pagination.Page{
				CurrentPage:  1,
				RowsPerPage:  10,
				TotalRows:    0,
				TotalPages:   0,
				StartIndex:   0,
				EndIndex:     0,
				FirstEnabled: false,
				PrevEnabled:  false,
				NextEnabled:  false,
				LastEnabled:  false,
			},
			summary: "Showing 0-0 of 0 records",
			label:   "Page 1 of 0",
		},
		{
			name:        "exactly one full page",
			totalRows:   10,
			rowsPerPage: 10,
			currentPage: 1,
			expected: pagination.Page{
				CurrentPage:  1,
				RowsPerPage:  10,
				TotalRows:    10,
				TotalPages:   1,
				StartIndex:   0,
				EndIndex:     10,
				FirstEnabled: false,
				PrevEnabled:  false,
				NextEnabled:  false,
				LastEnabled:  false,
			},
			summary: "Showing 1-10 of 10 records",
			label:   "Page 1 of 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := pagination.Paginate(tt.totalRows, tt.rowsPerPage, tt.currentPage)

			assert.Equal(t, tt.expected, page)
			assert.Equal(t, tt.summary, page.Summary())
			assert.Equal(t, tt.label, page.Label())
		})
	}
}

func TestPaginateKeepsBoundsWithinRows(t *testing.T) {
	page := pagination.Paginate(30, 25, 3)

	assert.Equal(t, 30, page.StartIndex)
	assert.Equal(t, 30, page.EndIndex)
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name        string
		currentPage int
		totalPages  int
		navigation  pagination.Navigation
		expected    int
	}{
		{"first", 3, 5, pagination.NavigationFirst, 1},
		{"prev", 3, 5, pagination.NavigationPrev, 2},
		{"next", 3, 5, pagination.NavigationNext, 4},
		{"last", 3, 5, pagination.NavigationLast, 5},
		{"prev on first page", 1, 5, pagination.NavigationPrev, 1},
		{"next on last page", 5, 5, pagination.NavigationNext, 5},
		{"next without pages", 1, 0, pagination.NavigationNext, 1},
		{"last without pages", 1, 0, pagination.NavigationLast, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(
				t,
				tt.expected,
				pagination.Navigate(tt.currentPage, tt.totalPages, tt.navigation),
			)
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, pagination.Clamp(0, 5))
	assert.Equal(t, 1, pagination.Clamp(-3, 5))
	assert.Equal(t, 5, pagination.Clamp(9, 5))
	assert.Equal(t, 3, pagination.Clamp(3, 5))
	assert.Equal(t, 1, pagination.Clamp(3, 0))
}

func TestParseNavigation(t *testing.T) {
	navigation, err := pagination.ParseNavigation("Next")
	require.NoError(t, err)
	assert.Equal(t, pagination.NavigationNext, navigation)

	_, err = pagination.ParseNavigation("sideways")
	assert.Error(t, err)

	assert.True(t, pagination.NavigationLast.IsValid())
	assert.False(t, pagination.Navigation(0).IsValid())
}

func TestValidateRowsPerPage(t *testing.T) {
	for _, rowsPerPage := range pagination.AllowedRowsPerPage {
		assert.NoError(t, pagination.ValidateRowsPerPage(rowsPerPage))
	}

	assert.Error(t, pagination.ValidateRowsPerPage(0))
	assert.Error(t, pagination.ValidateRowsPerPage(20))
}
