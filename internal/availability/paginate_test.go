package availability

import (
	"errors"
	"testing"
	"time"
)

func makeSlots(t *testing.T, n int) []Slot {
	t.Helper()
	slots := make([]Slot, n)
	start := mustTime(t, "2026-01-06 11:00")
	for i := range slots {
		s := start.Add(time.Duration(i) * time.Hour)
		slots[i] = Slot{Start: s, End: s.Add(time.Hour), Duration: time.Hour}
	}
	return slots
}

func TestPaginateMiddlePage(t *testing.T) {
	slots := makeSlots(t, 5)

	page, err := Paginate(slots, 2, 2)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}

	if len(page.Data) != 2 {
		t.Fatalf("expected 2 slots on page 2, got %d", len(page.Data))
	}
	if !page.Data[0].Start.Equal(slots[2].Start) || !page.Data[1].Start.Equal(slots[3].Start) {
		t.Error("page 2 should hold the third and fourth slots")
	}

	p := page.Pagination
	if p.Total != 5 || p.TotalPages != 3 || p.CurrentPage != 2 || p.PerPage != 2 {
		t.Errorf("pagination metadata = %+v", p)
	}
	if !p.HasMorePages {
		t.Error("expected has_more_pages on page 2 of 3")
	}
	if p.From == nil || *p.From != 3 {
		t.Errorf("from = %v, want 3", p.From)
	}
	if p.To == nil || *p.To != 4 {
		t.Errorf("to = %v, want 4", p.To)
	}
}

func TestPaginateLastPage(t *testing.T) {
	slots := makeSlots(t, 5)

	page, err := Paginate(slots, 3, 2)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("expected 1 slot on the last page, got %d", len(page.Data))
	}
	if page.Pagination.HasMorePages {
		t.Error("last page must not report more pages")
	}
	if page.Pagination.From == nil || *page.Pagination.From != 5 {
		t.Errorf("from = %v, want 5", page.Pagination.From)
	}
	if page.Pagination.To == nil || *page.Pagination.To != 5 {
		t.Errorf("to = %v, want 5", page.Pagination.To)
	}
}

func TestPaginateBeyondRange(t *testing.T) {
	slots := makeSlots(t, 5)

	page, err := Paginate(slots, 9, 2)
	if err != nil {
		t.Fatalf("paginate past the end should not error: %v", err)
	}
	if len(page.Data) != 0 {
		t.Fatalf("expected empty data, got %d slots", len(page.Data))
	}
	if page.Pagination.Total != 5 || page.Pagination.TotalPages != 3 {
		t.Errorf("metadata should stay accurate: %+v", page.Pagination)
	}
	if page.Pagination.From != nil || page.Pagination.To != nil {
		t.Error("from/to must be absent for an empty page")
	}
	if page.Pagination.HasMorePages {
		t.Error("a page past the end has no more pages")
	}
}

func TestPaginateEmptyList(t *testing.T) {
	page, err := Paginate(nil, 1, 10)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if page.Pagination.Total != 0 {
		t.Errorf("total = %d, want 0", page.Pagination.Total)
	}
	if page.Pagination.TotalPages != 1 {
		t.Errorf("total_pages = %d, want floor of 1", page.Pagination.TotalPages)
	}
	if page.Pagination.HasMorePages {
		t.Error("empty result has no more pages")
	}
}

func TestPaginateInvalidArguments(t *testing.T) {
	slots := makeSlots(t, 3)

	if _, err := Paginate(slots, 0, 10); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("page 0 should be rejected, got %v", err)
	}
	if _, err := Paginate(slots, 1, 0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("per_page 0 should be rejected, got %v", err)
	}
}

// Concatenating every page must reproduce the full list in order with no
// gaps or repeats.
func TestPaginateCompleteness(t *testing.T) {
	for _, total := range []int{0, 1, 4, 5, 11} {
		slots := makeSlots(t, total)
		perPage := 4

		first, err := Paginate(slots, 1, perPage)
		if err != nil {
			t.Fatalf("paginate: %v", err)
		}

		var rebuilt []Slot
		for p := 1; p <= first.Pagination.TotalPages; p++ {
			page, err := Paginate(slots, p, perPage)
			if err != nil {
				t.Fatalf("paginate page %d: %v", p, err)
			}
			rebuilt = append(rebuilt, page.Data...)
			if page.Pagination.HasMorePages != (p < first.Pagination.TotalPages) {
				t.Errorf("total=%d page=%d has_more_pages=%v", total, p, page.Pagination.HasMorePages)
			}
		}

		if len(rebuilt) != total {
			t.Fatalf("total=%d rebuilt %d slots", total, len(rebuilt))
		}
		for i := range rebuilt {
			if !rebuilt[i].Start.Equal(slots[i].Start) {
				t.Fatalf("total=%d slot %d out of place", total, i)
			}
		}
	}
}
