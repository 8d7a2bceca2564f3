package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsBounds(t *testing.T) {
	cases := []struct {
		name string
		in   Page
		want Page
	}{
		{"defaults", Page{}, Page{Page: 1, Limit: 10}},
		{"negative page", Page{Page: -3, Limit: 20}, Page{Page: 1, Limit: 20}},
		{"zero limit", Page{Page: 2, Limit: 0}, Page{Page: 2, Limit: 10}},
		{"over max limit", Page{Page: 1, Limit: 500}, Page{Page: 1, Limit: maxLimit}},
		{"in range", Page{Page: 4, Limit: 25}, Page{Page: 4, Limit: 25}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, Page{Page: 5, Limit: 10}.Offset())
}

func TestBuildPageInfo(t *testing.T) {
	info := BuildPageInfo(101, Page{Page: 2, Limit: 10})
	assert.Equal(t, int64(101), info.Total)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 10, info.Limit)
	assert.Equal(t, 11, info.TotalPages)

	info = BuildPageInfo(100, Page{Page: 1, Limit: 10})
	assert.Equal(t, 10, info.TotalPages)
}
