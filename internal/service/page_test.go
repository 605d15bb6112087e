package service

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 0, 2, 5)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.First)
	assert.False(t, p.Last)

	p = NewPage([]int{5}, 2, 2, 5)
	assert.True(t, p.Last)
	assert.False(t, p.First)

	// пустая выборка даёт пустой срез и единственная «последняя» страница
	empty := NewPage[int](nil, 0, 0, 0)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, DefaultPageSize, empty.Size)
	assert.Zero(t, empty.TotalPages)
	assert.True(t, empty.First)
	assert.True(t, empty.Last)
}

func TestMapPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 1, 2, 4)
	m := MapPage(p, strconv.Itoa)
	assert.Equal(t, []string{"1", "2"}, m.Content)
	assert.Equal(t, p.Page, m.Page)
	assert.Equal(t, p.TotalElements, m.TotalElements)
	assert.Equal(t, p.Last, m.Last)
}
