package rest

import (
	"net/http"
	"strconv"
)

// queryPagination parses the page/pageSize query parameters with shared
// bounds: page floors at 1 (Postgres rejects negative offsets) and pageSize
// defaults to 20, capped at 100.
func queryPagination(r *http.Request) (int, int) {
	page := 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v >= 1 {
		page = v
	}

	pageSize := 20
	if v, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && v >= 1 && v <= 100 {
		pageSize = v
	}

	return page, pageSize
}
