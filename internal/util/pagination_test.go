package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("x", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		page, size    int
		offset, limit int
	}{
		{1, 10, 0, 10},
		{3, 10, 20, 10},
		{0, 0, 0, DefaultPageSize},
		{2, 1000, DefaultPageSize, DefaultPageSize},
	}
	for _, tt := range tests {
		offset, limit := Calculate(tt.page, tt.size)
		assert.Equal(t, tt.offset, offset)
		assert.Equal(t, tt.limit, limit)
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got, meta := Page(items, 2, 2)
	assert.Equal(t, []int{3, 4}, got)
	assert.Equal(t, Meta{Page: 2, Size: 2, Total: 5, TotalPages: 3, HasPrev: true, HasNext: true}, meta)

	got, meta = Page(items, 3, 2)
	assert.Equal(t, []int{5}, got)
	assert.False(t, meta.HasNext)

	got, meta = Page(items, 9, 2)
	assert.Empty(t, got)
	assert.Equal(t, 5, meta.Total)

	got, meta = Page([]int{}, 1, 2)
	assert.Empty(t, got)
	assert.Equal(t, 0, meta.TotalPages)
}
