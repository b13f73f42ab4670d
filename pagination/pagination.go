package pagination

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"hermannm.dev/enumnames"
	"hermannm.dev/wrap"
)

var AllowedRowsPerPage = []int{10, 25, 50, 100}

const DefaultRowsPerPage = 25

func ValidateRowsPerPage(rowsPerPage int) error {
	if !slices.Contains(AllowedRowsPerPage, rowsPerPage) {
		return fmt.Errorf("must be one of %v, got %d", AllowedRowsPerPage, rowsPerPage)
	}
	return nil
}

// Page describes the visible slice [StartIndex, EndIndex) of the filtered rows, and which
// navigation buttons are enabled.
type Page struct {
	CurrentPage  int  `json:"currentPage"`
	RowsPerPage  int  `json:"rowsPerPage"`
	TotalRows    int  `json:"totalRows"`
	TotalPages   int  `json:"totalPages"`
	StartIndex   int  `json:"startIndex"`
	EndIndex     int  `json:"endIndex"`
	FirstEnabled bool `json:"firstEnabled"`
	PrevEnabled  bool `json:"prevEnabled"`
	NextEnabled  bool `json:"nextEnabled"`
	LastEnabled  bool `json:"lastEnabled"`
}

// Paginate computes the page bounds. The current page is reported as given, but the bounds are
// kept within the rows.
func Paginate(totalRows int, rowsPerPage int, currentPage int) Page {
	totalPages := TotalPages(totalRows, rowsPerPage)

	startIndex := min((currentPage-1)*rowsPerPage, totalRows)
	endIndex := min(currentPage*rowsPerPage, totalRows)

	isFirstPage := currentPage == 1
	isLastPage := currentPage == totalPages || totalPages == 0

	return Page{
		CurrentPage:  currentPage,
		RowsPerPage:  rowsPerPage,
		TotalRows:    totalRows,
		TotalPages:   totalPages,
		StartIndex:   max(startIndex, 0),
		EndIndex:     max(endIndex, 0),
		FirstEnabled: !isFirstPage,
		PrevEnabled:  !isFirstPage,
		NextEnabled:  !isLastPage,
		LastEnabled:  !isLastPage,
	}
}

func TotalPages(totalRows int, rowsPerPage int) int {
	if rowsPerPage <= 0 || totalRows <= 0 {
		return 0
	}
	return (totalRows + rowsPerPage - 1) / rowsPerPage
}

// Summary gives a description of the visible records, like "Showing 1-25 of 101 records".
func (page Page) Summary() string {
	first := page.StartIndex + 1
	if page.EndIndex == 0 {
		first = 0
	}
	return fmt.Sprintf("Showing %d-%d of %d records", first, page.EndIndex, page.TotalRows)
}

func (page Page) Label() string {
	return fmt.Sprintf("Page %d of %d", page.CurrentPage, page.TotalPages)
}

type Navigation uint8

const (
	NavigationFirst Navigation = iota + 1
	NavigationPrev
	NavigationNext
	NavigationLast
)

var navigationMap = enumnames.NewMap(map[Navigation]string{
	NavigationFirst: "first",
	NavigationPrev:  "prev",
	NavigationNext:  "next",
	NavigationLast:  "last",
})

func (navigation Navigation) IsValid() bool {
	return navigationMap.ContainsEnumValue(navigation)
}

func (navigation Navigation) String() string {
	return navigationMap.GetNameOrFallback(navigation, "INVALID_NAVIGATION")
}

func (navigation Navigation) MarshalJSON() ([]byte, error) {
	return navigationMap.MarshalToNameJSON(navigation)
}

func (navigation *Navigation) UnmarshalJSON(bytes []byte) error {
	return navigationMap.UnmarshalFromNameJSON(bytes, navigation)
}

func ParseNavigation(name string) (Navigation, error) {
	var navigation Navigation
	if err := navigation.UnmarshalJSON([]byte(strconv.Quote(strings.ToLower(name)))); err != nil {
		return 0, wrap.Errorf(err, "invalid page navigation '%s'", name)
	}
	return navigation, nil
}

// Navigate returns the page reached from currentPage, kept within [1, max(totalPages, 1)].
func Navigate(currentPage int, totalPages int, navigation Navigation) int {
	lastPage := max(totalPages, 1)

	var page int
	switch navigation {
	case NavigationFirst:
		page = 1
	case NavigationPrev:
		page = currentPage - 1
	case NavigationNext:
		page = currentPage + 1
	case NavigationLast:
		page = lastPage
	default:
		page = currentPage
	}

	return Clamp(page, totalPages)
}

func Clamp(page int, totalPages int) int {
	return min(max(page, 1), max(totalPages, 1))
}
