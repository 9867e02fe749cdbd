package rest

import (
	"net/http/httptest"
	"testing"
)

func TestQueryPagination(t *testing.T) {
	testCases := []struct {
		name         string
		url          string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "/plans", 1, 20},
		{"explicit values", "/plans?page=3&pageSize=50", 3, 50},
		{"page zero floors to one", "/plans?page=0", 1, 20},
		{"negative page floors to one", "/plans?page=-2", 1, 20},
		{"non-numeric page", "/plans?page=abc", 1, 20},
		{"pageSize zero falls back", "/plans?pageSize=0", 1, 20},
		{"negative pageSize falls back", "/plans?pageSize=-10", 1, 20},
		{"pageSize over cap falls back", "/plans?pageSize=5000", 1, 20},
		{"pageSize at cap", "/plans?pageSize=100", 1, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.url, nil)
			page, pageSize := queryPagination(r)
			if page != tc.wantPage || pageSize != tc.wantPageSize {
				t.Errorf("queryPagination(%q) = (%d, %d); want (%d, %d)",
					tc.url, page, pageSize, tc.wantPage, tc.wantPageSize)
			}
		})
	}
}
