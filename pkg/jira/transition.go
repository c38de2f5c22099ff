package jira

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ListTransitions returns the transitions available on an issue. Expects 200.
func ListTransitions(ctx context.Context, c Caller, issueKey, expand string) (*Result, error) {
	return c.Call(ctx, issuePath(issueKey, "transitions"), map[string]string{"expand": expand}, nil, http.MethodGet)
}

// DoTransition moves an issue through a transition. resolutionID is optional.
// Expects 204.
func DoTransition(ctx context.Context, c Caller, issueKey, transitionID, resolutionID string) (*Result, error) {
	body, err := sjson.SetBytes([]byte(`{}`), "transition.id", transitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to build transition payload: %w", err)
	}
	if resolutionID != "" {
		if body, err = sjson.SetBytes(body, "fields.resolution.id", resolutionID); err != nil {
			return nil, fmt.Errorf("failed to build transition payload: %w", err)
		}
	}
	return c.Call(ctx, issuePath(issueKey, "transitions"), nil, body, http.MethodPost)
}

// FindTransition looks up the transition leading to status in a
// ListTransitions body. Matching is case-insensitive on the target status
// name, then on the transition name.
func FindTransition(raw []byte, status string) (string, bool) {
	transitions := gjson.GetBytes(raw, "transitions").Array()
	for _, field := range []string{"to.name", "name"} {
		for _, t := range transitions {
			if strings.EqualFold(t.Get(field).String(), status) {
				return t.Get("id").String(), true
			}
		}
	}
	return "", false
}
