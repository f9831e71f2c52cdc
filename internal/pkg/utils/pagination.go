package utils

import (
	"net/http"
	"strconv"
)

// PaginationParams contains limit/offset pagination parameters
type PaginationParams struct {
	Limit  int
	Offset int
}

// DefaultFeedLimit is the default number of feed items per page
const DefaultFeedLimit = 50

// MaxFeedLimit is the maximum number of feed items per page
const MaxFeedLimit = 100

// ParsePaginationParams parses limit and offset from the query string
func ParsePaginationParams(r *http.Request) PaginationParams {
	q := r.URL.Query()
	limit := parseIntQuery(q.Get("limit"), DefaultFeedLimit)
	offset := parseIntQuery(q.Get("offset"), 0)

	// Enforce limits
	if limit < 1 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	if offset < 0 {
		offset = 0
	}

	return PaginationParams{
		Limit:  limit,
		Offset: offset,
	}
}

func parseIntQuery(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}
