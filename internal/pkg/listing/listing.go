// Package listing implements the generic filter, search, sort, projection,
// and pagination pipeline used by every list endpoint. It turns a raw query
// string map into a validated Query that can be applied to a gorm statement,
// plus the page metadata computation.
//
// Field access is allow-listed per resource: a query key is only usable for
// filtering, sorting, or projection when the resource's Options map it to a
// concrete column. Unknown keys are rejected instead of being passed through
// to the store, so client-supplied keys can never smuggle store operators.
package listing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"

	"gorm.io/gorm"
)

// Defaults applied when the raw query omits or mangles paging values.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Reserved query keys consumed by the pipeline itself. Everything else is
// treated as a filter key and checked against the resource allow-list.
func reservedKeys() map[string]struct{} {
	return map[string]struct{}{
		"search":     {},
		"searchTerm": {},
		"sort":       {},
		"limit":      {},
		"page":       {},
		"fields":     {},
	}
}

// Options declares, per resource, which query keys are usable and which
// columns they address.
type Options struct {
	// SearchableFields are the columns OR-combined in a case-insensitive
	// partial match when a search term is present.
	SearchableFields []string

	// FilterableFields maps exact-match filter keys to columns.
	FilterableFields map[string]string

	// SortableFields maps sort keys to columns. A leading minus on the raw
	// sort expression means descending.
	SortableFields map[string]string

	// SelectableFields maps projection keys (the "fields" list) to columns.
	SelectableFields map[string]string

	// DefaultSort is the raw sort expression used when none is supplied,
	// e.g. "-createdAt".
	DefaultSort string
}

// ErrQueryIsNotConstructed is returned when a Query value bypassed Build.
var ErrQueryIsNotConstructed = errs.NewValueIsRequiredError("listing Query must be created via Build")

// filter is one exact-match predicate, already resolved to a column.
type filter struct {
	column string
	value  string
}

// Query is the validated, ready-to-apply form of a raw list request.
type Query struct {
	search        string
	searchColumns []string
	filters       []filter
	orderExpr     string
	page          int
	limit         int
	selectColumns []string

	guard guard.ConstructorGuard
}

// Build runs the fixed pipeline over the raw query map:
// search, then filters, then sort, then pagination, then projection.
// Raw values for page and limit are coerced to positive integers, falling
// back to the defaults when absent or unusable.
func Build(raw map[string]string, opts Options) (Query, error) {
	q := Query{
		searchColumns: opts.SearchableFields,
		page:          DefaultPage,
		limit:         DefaultLimit,
		guard:         guard.NewConstructorGuard(),
	}

	// Search: "search" wins over the legacy "searchTerm" alias.
	if term, ok := raw["search"]; ok && term != "" {
		q.search = term
	} else if term, ok := raw["searchTerm"]; ok && term != "" {
		q.search = term
	}

	// Filters: every non-reserved key must be in the allow-list.
	var unknown []string
	for key, value := range raw {
		if _, ok := reservedKeys()[key]; ok {
			continue
		}
		column, ok := opts.FilterableFields[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		q.filters = append(q.filters, filter{column: column, value: value})
	}
	if len(unknown) > 0 {
		messages := make([]string, 0, len(unknown))
		for _, key := range unknown {
			messages = append(messages, fmt.Sprintf("unknown filter field %q", key))
		}
		return Query{}, errs.NewValidationFailedError(messages...)
	}

	// Sort: single expression, minus prefix means descending.
	sortExpr := raw["sort"]
	if sortExpr == "" {
		sortExpr = opts.DefaultSort
	}
	if sortExpr != "" {
		orderExpr, err := resolveSort(sortExpr, opts.SortableFields)
		if err != nil {
			return Query{}, err
		}
		q.orderExpr = orderExpr
	}

	// Pagination.
	if page, ok := parsePositiveInt(raw["page"]); ok {
		q.page = page
	}
	if limit, ok := parsePositiveInt(raw["limit"]); ok {
		q.limit = limit
	}

	// Projection: comma-separated field list.
	if fields := raw["fields"]; fields != "" {
		for _, field := range strings.Split(fields, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			column, ok := opts.SelectableFields[field]
			if !ok {
				return Query{}, errs.NewValidationFailedError(
					fmt.Sprintf("unknown projection field %q", field))
			}
			q.selectColumns = append(q.selectColumns, column)
		}
	}

	return q, nil
}

// resolveSort maps a raw sort expression to an ORDER BY fragment using the
// sortable allow-list.
func resolveSort(expr string, sortable map[string]string) (string, error) {
	direction := "ASC"
	key := expr
	if strings.HasPrefix(expr, "-") {
		direction = "DESC"
		key = expr[1:]
	}
	column, ok := sortable[key]
	if !ok {
		return "", errs.NewValidationFailedError(fmt.Sprintf("unknown sort field %q", key))
	}
	return fmt.Sprintf("%s %s", column, direction), nil
}

// parsePositiveInt coerces a raw string to a positive integer; anything
// absent, malformed, or non-positive reports not-ok so the default applies.
func parsePositiveInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Validate ensures the Query was created via Build.
func (q Query) Validate() error {
	return q.guard.Validate(ErrQueryIsNotConstructed)
}

// Page returns the resolved page number.
func (q Query) Page() int { return q.page }

// Limit returns the resolved page size.
func (q Query) Limit() int { return q.limit }

// Search returns the resolved search term, empty when none was supplied.
func (q Query) Search() string { return q.search }

// Offset returns the number of records skipped before the page starts.
func (q Query) Offset() int {
	return (q.page - 1) * q.limit
}

// ApplyFilter attaches the search and exact-match predicates to the
// statement. The page query and the count query both go through this exact
// method, which is what keeps the metadata total consistent with the page
// contents.
func (q Query) ApplyFilter(tx *gorm.DB) *gorm.DB {
	if q.search != "" && len(q.searchColumns) > 0 {
		pattern := "%" + q.search + "%"
		conditions := make([]string, 0, len(q.searchColumns))
		args := make([]interface{}, 0, len(q.searchColumns))
		for _, column := range q.searchColumns {
			conditions = append(conditions, fmt.Sprintf("%s ILIKE ?", column))
			args = append(args, pattern)
		}
		tx = tx.Where(strings.Join(conditions, " OR "), args...)
	}

	for _, f := range q.filters {
		tx = tx.Where(fmt.Sprintf("%s = ?", f.column), f.value)
	}
	return tx
}

// ApplyPage attaches ordering, pagination, and projection on top of the
// filter predicates. Use for the page query only, never for the count.
func (q Query) ApplyPage(tx *gorm.DB) *gorm.DB {
	tx = q.ApplyFilter(tx)
	if q.orderExpr != "" {
		tx = tx.Order(q.orderExpr)
	}
	if len(q.selectColumns) > 0 {
		tx = tx.Select(q.selectColumns)
	}
	return tx.Offset(q.Offset()).Limit(q.limit)
}

// Meta is the pagination metadata returned alongside every page.
type Meta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"totalPage"`
}

// Meta computes the metadata for a filtered total produced by the count
// query. TotalPage is the ceiling of total over limit.
func (q Query) Meta(total int64) Meta {
	return Meta{
		Page:      q.page,
		Limit:     q.limit,
		Total:     total,
		TotalPage: int(math.Ceil(float64(total) / float64(q.limit))),
	}
}
