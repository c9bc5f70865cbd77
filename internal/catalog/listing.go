package catalog

import (
	"sort"
	"strings"

	"macromatch-go-api/internal/models"
)

const (
	// ItemsPerPage is the browse page size.
	ItemsPerPage    = 6
	maxVisiblePages = 5

	FilterAll = "all"

	SortPerformance = "performance"
	SortVolume      = "volume"
	SortExpense     = "expense"
)

// Filter keeps ETFs whose name or symbol contains search (case-insensitive)
// and whose category and risk match. "all" disables a filter.
func Filter(etfs []models.ETF, search, category, risk string) []models.ETF {
	term := strings.ToLower(search)
	out := make([]models.ETF, 0, len(etfs))
	for _, etf := range etfs {
		if term != "" &&
			!strings.Contains(strings.ToLower(etf.Name), term) &&
			!strings.Contains(strings.ToLower(etf.Symbol), term) {
			continue
		}
		if category != "" && category != FilterAll && etf.Category != category {
			continue
		}
		if risk != "" && risk != FilterAll && string(etf.Risk) != risk {
			continue
		}
		out = append(out, etf)
	}
	return out
}

// Sort returns a sorted copy. Unknown keys keep the input order and nil
// market values always sort last.
func Sort(etfs []models.ETF, by string) []models.ETF {
	out := append([]models.ETF(nil), etfs...)

	var less func(a, b models.ETF) bool
	switch by {
	case SortPerformance:
		less = func(a, b models.ETF) bool { return descNilsLast(a.ChangeRate, b.ChangeRate) }
	case SortVolume:
		less = func(a, b models.ETF) bool {
			return descNilsLast(int64Ptr(a.Volume), int64Ptr(b.Volume))
		}
	case SortExpense:
		less = func(a, b models.ETF) bool { return a.Expense < b.Expense }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func descNilsLast(a, b *float64) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a > *b
	}
}

func int64Ptr(v *int64) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// TotalPages is the page count for n items, at least 1.
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + ItemsPerPage - 1) / ItemsPerPage
}

// Paginate returns the items of a 1-based page. Out of range pages are empty.
func Paginate(etfs []models.ETF, page int) []models.ETF {
	if page < 1 {
		page = 1
	}
	from := (page - 1) * ItemsPerPage
	if from >= len(etfs) {
		return []models.ETF{}
	}
	to := min(from+ItemsPerPage, len(etfs))
	return etfs[from:to]
}

// PageNumbers returns the window of page links around current.
func PageNumbers(current, total int) []int {
	pages := []int{}
	if total <= maxVisiblePages {
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	startPage := max(1, current-2)
	endPage := min(total, startPage+maxVisiblePages-1)
	if endPage-startPage < maxVisiblePages-1 {
		startPage = max(1, endPage-maxVisiblePages+1)
	}
	for i := startPage; i <= endPage; i++ {
		pages = append(pages, i)
	}
	return pages
}

// Page runs the full browse pipeline for a query.
func Page(etfs []models.ETF, q models.ETFQuery) models.ETFPage {
	filtered := Sort(Filter(etfs, q.Search, q.Category, q.Risk), q.Sort)
	total := TotalPages(len(filtered))
	page := max(q.Page, 1)

	return models.ETFPage{
		Items:      Paginate(filtered, page),
		Total:      len(filtered),
		Page:       page,
		TotalPages: total,
		Pages:      PageNumbers(page, total),
	}
}
