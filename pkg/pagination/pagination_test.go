package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/products", nil)

	p := FromRequest(r)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest_Explicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/products?page=3&per_page=5", nil)

	p := FromRequest(r)

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 5, p.PerPage)
	assert.Equal(t, 10, p.Offset)
}

func TestFromRequest_InvalidValuesIgnored(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/products?page=-1&per_page=9000", nil)

	p := FromRequest(r)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}

func TestNewResult(t *testing.T) {
	params := Params{Page: 1, PerPage: 5}

	res := NewResult([]string{"onigiri", "sushi", "egg"}, 8, params)

	assert.Equal(t, 8, res.TotalCount)
	assert.Equal(t, 2, res.TotalPages)
	assert.True(t, res.HasNext)
	assert.False(t, res.HasPrev)
	assert.Len(t, res.Data, 3)
}

func TestNewResult_LastPage(t *testing.T) {
	params := Params{Page: 2, PerPage: 5}

	res := NewResult([]string{"pudding", "pretzel", "buritto"}, 8, params)

	assert.False(t, res.HasNext)
	assert.True(t, res.HasPrev)
}

func TestNewResult_NilData(t *testing.T) {
	res := NewResult[string](nil, 0, DefaultParams())

	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Equal(t, 0, res.TotalPages)
}
