package jira

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"testing"

	"github.com/gojira/gojira/pkg/auth"
	"github.com/gojira/gojira/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) IsAuthenticated() bool { return s != "" }

func (s staticToken) CredentialToken() (string, error) { return string(s), nil }

func (s staticToken) Username() (string, error) { return "jane", nil }

type memCache struct {
	mu      sync.Mutex
	entries map[string]*cache.Entry
}

func (m *memCache) Get(k string) (*cache.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[k]
	return e, ok
}

func (m *memCache) Set(k string, e *cache.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = map[string]*cache.Entry{}
	}
	m.entries[k] = e
	return nil
}

func (m *memCache) DeletePrefix(prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *memCache) Close() error { return nil }

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func (failingBody) Close() error { return nil }

func TestClient_SetsHeadersWithToken(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("amFuZTpodW50ZXIy"))
	res, err := c.Call(context.Background(), "myself", nil, nil, http.MethodGet)
	require.NoError(t, err)

	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "application/json;charset=UTF-8", got.Get("Content-Type"))
	assert.Equal(t, "Basic amFuZTpodW50ZXIy", got.Get("Authorization"))
	assert.Equal(t, map[string]any{"ok": true}, res.Data)
}

func TestClient_NoHeadersWithoutToken(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte("pong"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, auth.Anonymous{})
	res, err := c.Call(context.Background(), "ping", nil, nil, http.MethodGet)
	require.NoError(t, err)

	assert.Empty(t, got.Get("Authorization"))
	assert.Empty(t, got.Get("Accept"))
	assert.Equal(t, "pong", res.Data)
}

func TestClient_QueryConstruction(t *testing.T) {
	var path, rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		rawQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/jira/", staticToken("t"))
	_, err := c.Call(context.Background(), "search?jql=assignee=currentUser()", map[string]string{
		"startAt":    "",
		"maxResults": "10",
		"fields":     "",
	}, nil, http.MethodGet)
	require.NoError(t, err)

	assert.Equal(t, "/jira/rest/api/2/search", path)
	assert.Equal(t, "jql=assignee=currentUser()&maxResults=10", rawQuery)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"errorMessages":["Issue does not exist"]}`,
			check: func(t *testing.T, err error) {
				var nf *NotFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, []string{"Issue does not exist"}, nf.Messages)
			},
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var ua *UnauthorizedError
				assert.True(t, errors.As(err, &ua))
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"errorMessages":[],"errors":{"timeLogged":"invalid"}}`,
			check: func(t *testing.T, err error) {
				var api *APIError
				require.True(t, errors.As(err, &api))
				assert.Equal(t, http.StatusInternalServerError, api.StatusCode())
				assert.Equal(t, []string{"timeLogged: invalid"}, api.Messages)
			},
		},
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			body:   "not json",
			check: func(t *testing.T, err error) {
				var api *APIError
				require.True(t, errors.As(err, &api))
				assert.Empty(t, api.Messages)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, staticToken("t"))
			res, err := c.Call(context.Background(), "issue/AB-1", nil, nil, http.MethodGet)
			assert.Nil(t, res)
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, tt.status, c.LastStatusCode())
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, staticToken("t"))
	_, err := c.Call(context.Background(), "myself", nil, nil, http.MethodGet)

	var api *APIError
	require.True(t, errors.As(err, &api))
	assert.Equal(t, 0, api.StatusCode())
	assert.Equal(t, 0, c.LastStatusCode())
}

func TestClient_InitTwice(t *testing.T) {
	c := NewClient("https://jira.example.com", nil)
	require.NoError(t, c.Init())
	assert.ErrorIs(t, c.Init(), ErrAlreadyInitialized)
}

func TestClient_EmptyJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("t"))
	res, err := c.Call(context.Background(), "issue/AB-1/assignee", nil, []byte(`{"name":"jane"}`), http.MethodPut)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "", res.Data)
	assert.Equal(t, http.StatusNoContent, c.LastStatusCode())
}

func TestClient_CachesGet(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"worklogs":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("t"), WithCache(&memCache{}))
	for i := 0; i < 2; i++ {
		res, err := c.Call(context.Background(), "issue/AB-1/worklog", nil, nil, http.MethodGet)
		require.NoError(t, err)
		assert.Equal(t, 0, int(res.Get("worklogs.#").Int()))
	}
	assert.Equal(t, 1, hits)

	_, err := c.Call(context.Background(), "issue/AB-1/worklog", nil, []byte(`{"timeSpent":"1h"}`), http.MethodPost)
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestClient_WriteInvalidatesCachedReads(t *testing.T) {
	var mu sync.Mutex
	worklogs := `{"worklogs":[]}`
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		hits++
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			worklogs = `{"worklogs":[{"id":"1","timeSpent":"1h"}]}`
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"1"}`))
			return
		}
		w.Write([]byte(worklogs))
	}))
	defer srv.Close()

	rc, err := cache.OpenSQLite(filepath.Join(t.TempDir(), "cache.db"), time.Minute)
	require.NoError(t, err)
	defer rc.Close()

	ctx := context.Background()
	c := NewClient(srv.URL, staticToken("t"), WithCache(rc))

	res, err := ListWorklogs(ctx, c, "AB-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Get("worklogs.#").Int())

	_, err = Search(ctx, c, "assignee=currentUser()", SearchOptions{})
	require.NoError(t, err)

	_, err = AddWorklog(ctx, c, "AB-1", WorklogInput{TimeSpent: "1h"})
	require.NoError(t, err)

	res, err = ListWorklogs(ctx, c, "AB-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Get("worklogs.#").Int())

	_, err = Search(ctx, c, "assignee=currentUser()", SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, 5, hits)
}

func TestClient_LastStatusOnBodyReadFailure(t *testing.T) {
	status := http.StatusOK
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if status == http.StatusOK {
			return &http.Response{StatusCode: status, Header: http.Header{}, Body: http.NoBody, Request: r}, nil
		}
		return &http.Response{StatusCode: status, Header: http.Header{}, Body: failingBody{}, Request: r}, nil
	})

	c := NewClient("https://jira.example.com", staticToken("t"), WithTransport(rt))
	_, err := c.Call(context.Background(), "myself", nil, nil, http.MethodGet)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, c.LastStatusCode())

	status = http.StatusBadGateway
	_, err = c.Call(context.Background(), "serverInfo", nil, nil, http.MethodGet)
	var api *APIError
	require.True(t, errors.As(err, &api))
	assert.Equal(t, http.StatusBadGateway, api.StatusCode())
	assert.Equal(t, http.StatusBadGateway, c.LastStatusCode())
}
