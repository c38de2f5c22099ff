package jira

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/sjson"
)

// AssignIssue sets the assignee of an issue. Expects 204.
func AssignIssue(ctx context.Context, c Caller, issueKey, assignee string) (*Result, error) {
	body, err := sjson.SetBytes([]byte(`{}`), "name", assignee)
	if err != nil {
		return nil, fmt.Errorf("failed to build assignee payload: %w", err)
	}
	return c.Call(ctx, issuePath(issueKey, "assignee"), nil, body, http.MethodPut)
}

func issuePath(issueKey string, parts ...string) string {
	p := "issue/" + url.PathEscape(issueKey)
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}
