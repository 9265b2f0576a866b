package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageDefaults(t *testing.T) {
	for _, tc := range []struct {
		name     string
		page     string
		limit    string
		wantPage int
		wantLim  int
	}{
		{"missing", "", "", 1, 10},
		{"garbage", "abc", "xyz", 1, 10},
		{"zero", "0", "0", 1, 10},
		{"negative", "-3", "-5", 1, 10},
		{"valid", "4", "25", 4, 25},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := ParsePage(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, p.Number)
			assert.Equal(t, tc.wantLim, p.Limit)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, Page{Number: 2, Limit: 10}.Offset())
	assert.Equal(t, 50, Page{Number: 11, Limit: 5}.Offset())
}

func TestMetaTotalPages(t *testing.T) {
	p := Page{Number: 1, Limit: 10}

	assert.Equal(t, int64(0), NewMeta(0, p).TotalPages)
	assert.Equal(t, int64(1), NewMeta(10, p).TotalPages)
	assert.Equal(t, int64(2), NewMeta(11, p).TotalPages)
}

func TestMetaEchoesRequest(t *testing.T) {
	m := NewMeta(37, Page{Number: 3, Limit: 10})

	assert.Equal(t, int64(37), m.Count)
	assert.Equal(t, 3, m.Page)
	assert.Equal(t, 10, m.PerPage)
	assert.Equal(t, int64(4), m.TotalPages)
}
