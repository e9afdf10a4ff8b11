package common_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/McCollisters/autovista-api-sub002/internal/common"
)

func TestParsePagination(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		url         string
		wantPage    int
		wantPerPage int
	}{
		"defaults":      {url: "/v1/quotes", wantPage: 1, wantPerPage: 20},
		"explicit":      {url: "/v1/quotes?page=3&limit=50", wantPage: 3, wantPerPage: 50},
		"clamped":       {url: "/v1/quotes?limit=5000", wantPage: 1, wantPerPage: common.MaxPerPage},
		"garbage":       {url: "/v1/quotes?page=x&limit=-2", wantPage: 1, wantPerPage: 20},
		"zero-rejected": {url: "/v1/quotes?page=0&limit=0", wantPage: 1, wantPerPage: 20},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			page, perPage := common.ParsePagination(httptest.NewRequest("GET", tc.url, nil), 20)
			require.Equal(t, tc.wantPage, page)
			require.Equal(t, tc.wantPerPage, perPage)
		})
	}
}

func TestNewPagination(t *testing.T) {
	t.Parallel()

	meta := common.NewPagination(2, 20, 41)
	require.Equal(t, 3, meta.TotalPages)

	empty := common.NewPagination(1, 20, 0)
	require.Zero(t, empty.TotalPages)
}
