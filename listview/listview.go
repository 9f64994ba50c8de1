// Package listview is the client-side search/filter/paginate pipeline behind
// the admin and transactions tables. All three stages are pure: they never
// mutate their input and the same inputs always produce the same output. The
// documented order is search, then filter, then paginate.
package listview

import (
	"strings"
	"time"
)

// Search keeps the records whose searchable fields contain the query,
// case-insensitively. An empty or whitespace-only query returns the input
// unchanged. fields extracts the searchable field values of a record.
func Search[T any](records []T, query string, fields func(T) []string) []T {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return records
	}

	matched := make([]T, 0, len(records))
	for _, record := range records {
		for _, field := range fields(record) {
			if strings.Contains(strings.ToLower(field), query) {
				matched = append(matched, record)
				break
			}
		}
	}
	return matched
}

// Criterion is a single filter predicate. Criteria are AND-combined.
type Criterion[T any] func(T) bool

// Filter keeps the records that satisfy every criterion.
func Filter[T any](records []T, criteria ...Criterion[T]) []T {
	if len(criteria) == 0 {
		return records
	}

	kept := make([]T, 0, len(records))
outer:
	for _, record := range records {
		for _, criterion := range criteria {
			if !criterion(record) {
				continue outer
			}
		}
		kept = append(kept, record)
	}
	return kept
}

// DateRange is a relative creation-date window.
type DateRange string

const (
	RangeAll    DateRange = "all"
	RangeToday  DateRange = "today"
	Range7Days  DateRange = "7d"
	Range30Days DateRange = "30d"
	Range90Days DateRange = "90d"
)

// Days returns the window length in days. ok is false for RangeAll and
// unknown values, which are no-ops.
func (r DateRange) Days() (days int, ok bool) {
	switch r {
	case RangeToday:
		return 1, true
	case Range7Days:
		return 7, true
	case Range30Days:
		return 30, true
	case Range90Days:
		return 90, true
	default:
		return 0, false
	}
}

// WithinRange keeps records created no more than the window's day count
// before now. RangeAll always matches.
func WithinRange[T any](window DateRange, createdAt func(T) time.Time, now time.Time) Criterion[T] {
	days, ok := window.Days()
	if !ok {
		return func(T) bool { return true }
	}
	cutoff := now.AddDate(0, 0, -days)
	return func(record T) bool {
		return !createdAt(record).Before(cutoff)
	}
}

// FieldEquals keeps records whose field equals want. The value "all" (or an
// empty criterion) is a no-op, matching the UI's unset filter.
func FieldEquals[T any](want string, field func(T) string) Criterion[T] {
	if want == "" || strings.EqualFold(want, "all") {
		return func(T) bool { return true }
	}
	return func(record T) bool {
		return strings.EqualFold(field(record), want)
	}
}

// Page is one visible page plus the counts the pagination controls need.
// TotalRecords counts the post-filter, pre-pagination records.
type Page[T any] struct {
	Items        []T `json:"items"`
	Page         int `json:"page"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
	TotalPages   int `json:"totalPages"`
}

// Paginate slices out the records in [(page-1)*pageSize, page*pageSize). The
// page number is not clamped here; an out-of-range page yields an empty page,
// which is acceptable behavior for the caller to guard, not an error.
func Paginate[T any](records []T, page, pageSize int) Page[T] {
	result := Page[T]{
		Items:        []T{},
		Page:         page,
		PageSize:     pageSize,
		TotalRecords: len(records),
	}
	if pageSize <= 0 {
		return result
	}
	result.TotalPages = (len(records) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start < 0 || start >= len(records) {
		return result
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	result.Items = records[start:end]
	return result
}

// ClampPage bounds page to [1, ceil(total/pageSize)], the guard callers apply
// before Paginate.
func ClampPage(page, total, pageSize int) int {
	if page < 1 {
		return 1
	}
	if pageSize <= 0 {
		return 1
	}
	last := (total + pageSize - 1) / pageSize
	if last < 1 {
		last = 1
	}
	if page > last {
		return last
	}
	return page
}
