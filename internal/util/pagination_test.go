package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationPages(t *testing.T) {
	cases := []struct {
		limit int
		total int64
		pages int
	}{
		{10, 25, 3},
		{10, 0, 0},
		{10, 10, 1},
		{10, 11, 2},
		{1, 7, 7},
		{3, 9, 3},
		{100, 1, 1},
	}
	for _, tc := range cases {
		p := NewPagination(1, tc.limit, tc.total)
		assert.Equal(t, tc.pages, p.Pages, "limit=%d total=%d", tc.limit, tc.total)
		assert.Equal(t, tc.total, p.Total)
	}
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0, 10, 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = NormalizePage(3, 500, 10, 100)
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, limit)

	assert.Equal(t, 20, Offset(3, 10))
}
