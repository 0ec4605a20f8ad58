package params

import (
	"net/url"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantPage   int
		wantOffset int
	}{
		{"defaults", "", 15, 1, 0},
		{"explicit", "limit=10&page=3", 10, 3, 20},
		{"limit capped", "limit=500", 30, 1, 0},
		{"garbage falls back", "limit=abc&page=-2", 15, 1, 0},
		{"zero limit falls back", "limit=0", 15, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			p := ParsePagination(q)
			if p.Limit != tt.wantLimit || p.Page != tt.wantPage || p.Offset != tt.wantOffset {
				t.Errorf("got limit=%d page=%d offset=%d, want %d/%d/%d",
					p.Limit, p.Page, p.Offset, tt.wantLimit, tt.wantPage, tt.wantOffset)
			}
		})
	}
}

func TestComputeMeta(t *testing.T) {
	p := Pagination{Limit: 10, Page: 2, Offset: 10}
	p.ComputeMeta(35)

	if p.TotalPages != 4 {
		t.Errorf("TotalPages = %d, want 4", p.TotalPages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Error("page 2 of 4 has both neighbors")
	}
}
