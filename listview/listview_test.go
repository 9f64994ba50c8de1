package listview_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Svector-anu/Aboki-Business/listview"
)

type record struct {
	Name      string
	Email     string
	CreatedAt time.Time
}

func fields(r record) []string {
	return []string{r.Name, r.Email}
}

func someRecords(n int, createdAt time.Time) []record {
	records := make([]record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, record{
			Name:      fmt.Sprintf("user-%02d", i),
			Email:     fmt.Sprintf("user-%02d@example.com", i),
			CreatedAt: createdAt,
		})
	}
	return records
}

func TestSearch(t *testing.T) {
	now := time.Now()
	records := []record{
		{Name: "Ada Lovelace", Email: "ada@aboki.xyz", CreatedAt: now},
		{Name: "Grace Hopper", Email: "grace@navy.mil", CreatedAt: now},
		{Name: "Chinua Achebe", Email: "chinua@books.ng", CreatedAt: now},
	}

	t.Run("case insensitive substring over all fields", func(t *testing.T) {
		require.Len(t, listview.Search(records, "ADA", fields), 1)
		require.Len(t, listview.Search(records, "navy", fields), 1)
		require.Len(t, listview.Search(records, "a", fields), 3)
		require.Empty(t, listview.Search(records, "nomatch", fields))
	})

	t.Run("empty and whitespace queries are identity", func(t *testing.T) {
		require.Equal(t, records, listview.Search(records, "", fields))
		require.Equal(t, records, listview.Search(records, "   ", fields))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := listview.Search(records, "ace", fields)
		twice := listview.Search(once, "ace", fields)
		require.Equal(t, once, twice)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		before := make([]record, len(records))
		copy(before, records)
		_ = listview.Search(records, "grace", fields)
		require.Equal(t, before, records)
	})
}

func TestFilter(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	records := []record{
		{Name: "fresh", CreatedAt: now.Add(-2 * time.Hour)},
		{Name: "this-week", CreatedAt: now.AddDate(0, 0, -5)},
		{Name: "old", CreatedAt: now.AddDate(0, 0, -40)},
	}

	t.Run("7d window excludes older records", func(t *testing.T) {
		kept := listview.Filter(records,
			listview.WithinRange(listview.Range7Days, createdAtOf, now))
		require.Len(t, kept, 2)
		for _, r := range kept {
			require.NotEqual(t, "old", r.Name)
		}
	})

	t.Run("today keeps only the last day", func(t *testing.T) {
		kept := listview.Filter(records,
			listview.WithinRange(listview.RangeToday, createdAtOf, now))
		require.Len(t, kept, 1)
		require.Equal(t, "fresh", kept[0].Name)
	})

	t.Run("all and unknown ranges are no-ops", func(t *testing.T) {
		require.Len(t, listview.Filter(records,
			listview.WithinRange(listview.RangeAll, createdAtOf, now)), 3)
		require.Len(t, listview.Filter(records,
			listview.WithinRange("bogus", createdAtOf, now)), 3)
	})

	t.Run("criteria are AND-combined", func(t *testing.T) {
		kept := listview.Filter(records,
			listview.WithinRange(listview.Range30Days, createdAtOf, now),
			listview.FieldEquals("this-week", func(r record) string { return r.Name }),
		)
		require.Len(t, kept, 1)
		require.Equal(t, "this-week", kept[0].Name)
	})

	t.Run("status all is a no-op criterion", func(t *testing.T) {
		kept := listview.Filter(records,
			listview.FieldEquals("all", func(r record) string { return r.Name }))
		require.Len(t, kept, 3)
	})
}


func createdAtOf(r record) time.Time { return r.CreatedAt }

func TestPaginate(t *testing.T) {
	records := someRecords(25, time.Now())

	t.Run("25 records at size 10 make 3 pages", func(t *testing.T) {
		page1 := listview.Paginate(records, 1, 10)
		require.Len(t, page1.Items, 10)
		require.Equal(t, "user-00", page1.Items[0].Name)
		require.Equal(t, 25, page1.TotalRecords)
		require.Equal(t, 3, page1.TotalPages)

		page3 := listview.Paginate(records, 3, 10)
		require.Len(t, page3.Items, 5)
		require.Equal(t, "user-20", page3.Items[0].Name)
		require.Equal(t, "user-24", page3.Items[4].Name)
	})

	t.Run("out-of-range pages yield an empty page, not an error", func(t *testing.T) {
		require.Empty(t, listview.Paginate(records, 4, 10).Items)
		require.Empty(t, listview.Paginate(records, 0, 10).Items)
		require.Empty(t, listview.Paginate(records, -1, 10).Items)
	})

	t.Run("zero page size yields an empty page", func(t *testing.T) {
		page := listview.Paginate(records, 1, 0)
		require.Empty(t, page.Items)
		require.Zero(t, page.TotalPages)
		require.Equal(t, 25, page.TotalRecords)
	})

	t.Run("empty input", func(t *testing.T) {
		page := listview.Paginate([]record{}, 1, 10)
		require.Empty(t, page.Items)
		require.Zero(t, page.TotalRecords)
		require.Zero(t, page.TotalPages)
	})
}

func TestClampPage(t *testing.T) {
	require.Equal(t, 1, listview.ClampPage(0, 25, 10))
	require.Equal(t, 1, listview.ClampPage(-3, 25, 10))
	require.Equal(t, 2, listview.ClampPage(2, 25, 10))
	require.Equal(t, 3, listview.ClampPage(9, 25, 10))
	require.Equal(t, 1, listview.ClampPage(5, 0, 10))
}

func TestPipelineIsPure(t *testing.T) {
	now := time.Now()
	records := someRecords(12, now)
	before := make([]record, len(records))
	copy(before, records)

	result := listview.Search(records, "user", fields)
	result = listview.Filter(result, listview.WithinRange(listview.Range7Days, createdAtOf, now))
	_ = listview.Paginate(result, 2, 5)

	require.Equal(t, before, records)
}
