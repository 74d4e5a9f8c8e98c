package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Offset(t *testing.T) {
	tests := []struct {
		name   string
		params PaginationParams
		want   int
	}{
		{"first page", PaginationParams{Page: 1, PageSize: 6}, 0},
		{"second page", PaginationParams{Page: 2, PageSize: 6}, 6},
		{"zero page clamps to first", PaginationParams{Page: 0, PageSize: 6}, 0},
		{"negative page clamps to first", PaginationParams{Page: -3, PageSize: 6}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Offset())
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		pageSize int
		want     int
	}{
		{"exact multiple", 12, 6, 2},
		{"partial last page", 13, 6, 3},
		{"single item", 1, 6, 1},
		{"empty", 0, 6, 0},
		{"zero page size", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.pageSize))
		})
	}
}
