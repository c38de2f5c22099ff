package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/sjson"
)

var ErrMissingTimeSpent = errors.New("time spent is required")

// Estimate adjustment modes accepted by the worklog resource.
const (
	AdjustNew    = "new"
	AdjustLeave  = "leave"
	AdjustManual = "manual"
	AdjustAuto   = "auto"
)

// Adjustment controls how the remaining estimate changes. The zero value
// lets the server decide.
type Adjustment struct {
	Mode        string
	NewEstimate string
	ReduceBy    string
	IncreaseBy  string
}

func (a Adjustment) params() map[string]string {
	return map[string]string{
		"adjustEstimate": a.Mode,
		"newEstimate":    a.NewEstimate,
		"reduceBy":       a.ReduceBy,
		"increaseBy":     a.IncreaseBy,
	}
}

// WorklogInput is the payload of a worklog add or update.
// Started must already be formatted with FormatStarted.
type WorklogInput struct {
	TimeSpent string
	Comment   string
	Started   string
	Adjust    Adjustment
}

func (w WorklogInput) payload() ([]byte, error) {
	if w.TimeSpent == "" {
		return nil, ErrMissingTimeSpent
	}

	body, err := sjson.SetBytes([]byte(`{}`), "timeSpent", w.TimeSpent)
	if err != nil {
		return nil, err
	}
	if w.Comment != "" {
		if body, err = sjson.SetBytes(body, "comment", w.Comment); err != nil {
			return nil, err
		}
	}
	if w.Started != "" {
		if body, err = sjson.SetBytes(body, "started", w.Started); err != nil {
			return nil, err
		}
	}
	return body, nil
}

// ListWorklogs returns every worklog of an issue. Expects 200.
func ListWorklogs(ctx context.Context, c Caller, issueKey string) (*Result, error) {
	return c.Call(ctx, issuePath(issueKey, "worklog"), nil, nil, http.MethodGet)
}

// AddWorklog logs work on an issue. Expects 201.
func AddWorklog(ctx context.Context, c Caller, issueKey string, in WorklogInput) (*Result, error) {
	body, err := in.payload()
	if err != nil {
		return nil, fmt.Errorf("failed to build worklog payload: %w", err)
	}
	return c.Call(ctx, issuePath(issueKey, "worklog"), in.Adjust.params(), body, http.MethodPost)
}

// UpdateWorklog replaces an existing worklog. Expects 200.
func UpdateWorklog(ctx context.Context, c Caller, issueKey, worklogID string, in WorklogInput) (*Result, error) {
	body, err := in.payload()
	if err != nil {
		return nil, fmt.Errorf("failed to build worklog payload: %w", err)
	}
	return c.Call(ctx, issuePath(issueKey, "worklog", worklogID), in.Adjust.params(), body, http.MethodPut)
}

// DeleteWorklog removes a worklog. Expects 204.
func DeleteWorklog(ctx context.Context, c Caller, issueKey, worklogID string, adj Adjustment) (*Result, error) {
	return c.Call(ctx, issuePath(issueKey, "worklog", worklogID), adj.params(), nil, http.MethodDelete)
}
