package jira

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrAlreadyInitialized is returned by a second call to Client.Init.
var ErrAlreadyInitialized = errors.New("client already initialized")

// NotFoundError is returned for HTTP 404 responses.
type NotFoundError struct {
	URL      string
	Messages []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%d %s: %s", http.StatusNotFound, http.StatusText(http.StatusNotFound), e.URL)
}

func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// UnauthorizedError is returned for HTTP 401 responses.
type UnauthorizedError struct {
	URL string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%d %s: %s", http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), e.URL)
}

func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// APIError covers every other failed call. Status is 0 when the request
// never produced a response.
type APIError struct {
	Status   int
	URL      string
	Messages []string
	Err      error
}

func (e *APIError) Error() string {
	var sb strings.Builder
	if e.Status == 0 {
		sb.WriteString("request failed")
	} else {
		fmt.Fprintf(&sb, "HTTP %d", e.Status)
	}
	if e.URL != "" {
		sb.WriteString(": " + e.URL)
	}
	if len(e.Messages) > 0 {
		sb.WriteString(": " + strings.Join(e.Messages, "; "))
	}
	if e.Err != nil {
		sb.WriteString(": " + e.Err.Error())
	}
	return sb.String()
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) StatusCode() int { return e.Status }

// errorMessages collects "errorMessages" and "errors" from a Jira error body.
func errorMessages(body []byte) []string {
	if !gjson.ValidBytes(body) {
		return nil
	}

	var msgs []string
	parsed := gjson.ParseBytes(body)
	parsed.Get("errorMessages").ForEach(func(_, v gjson.Result) bool {
		if s := v.String(); s != "" {
			msgs = append(msgs, s)
		}
		return true
	})
	parsed.Get("errors").ForEach(func(k, v gjson.Result) bool {
		msgs = append(msgs, k.String()+": "+v.String())
		return true
	})
	return msgs
}
