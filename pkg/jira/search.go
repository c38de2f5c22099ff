package jira

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// SearchOptions are the optional query parameters of the search resource.
// Zero values are not sent.
type SearchOptions struct {
	StartAt       int
	MaxResults    int
	ValidateQuery string
	Fields        []string
	Expand        []string
}

func (o SearchOptions) params() map[string]string {
	p := map[string]string{
		"validateQuery": o.ValidateQuery,
		"fields":        strings.Join(o.Fields, ","),
		"expand":        strings.Join(o.Expand, ","),
	}
	if o.StartAt > 0 {
		p["startAt"] = strconv.Itoa(o.StartAt)
	}
	if o.MaxResults > 0 {
		p["maxResults"] = strconv.Itoa(o.MaxResults)
	}
	return p
}

// Search runs a query-encoded JQL string. Expects 200.
func Search(ctx context.Context, c Caller, jql string, opts SearchOptions) (*Result, error) {
	return c.Call(ctx, "search?jql="+jql, opts.params(), nil, http.MethodGet)
}
