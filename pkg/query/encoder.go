// Package query encodes document list queries into URL query strings.
package query

import (
	"net/url"
	"strconv"

	"github.com/cocobase/cocobase-go/pkg/models"
)

// BuildFilterQuery encodes q as a URL query string. Filter entries are copied
// verbatim; limit and offset are always present and default to
// models.DefaultLimit and models.DefaultOffset. A nil query encodes the
// defaults only.
func BuildFilterQuery(q *models.Query) string {
	params := url.Values{}
	if q != nil {
		for k, v := range q.Filters {
			params.Set(k, v)
		}
	}

	// Pagination parameters take precedence over filters with the same name.
	params.Set("limit", strconv.Itoa(q.LimitOrDefault()))
	params.Set("offset", strconv.Itoa(q.OffsetOrDefault()))

	return params.Encode()
}
