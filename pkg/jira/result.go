package jira

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Result is the envelope of a completed call.
// Data holds the decoded JSON value, or the body text when the response
// is not JSON.
type Result struct {
	StatusCode  int
	ContentType string
	Raw         []byte
	Data        any
}

func newResult(status int, contentType string, raw []byte) *Result {
	r := &Result{StatusCode: status, ContentType: contentType, Raw: raw}
	if r.IsJSON() && len(raw) > 0 {
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			r.Data = v
			return r
		}
	}
	r.Data = string(raw)
	return r
}

// IsJSON reports whether the response declared a JSON content type.
func (r *Result) IsJSON() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "json")
}

// Get reads a gjson path from the raw body.
func (r *Result) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Raw, path)
}
