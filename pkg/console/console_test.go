package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gojira/gojira/pkg/render"
	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	rows := render.Render([]byte(`{"issues":[{"key":"AB-1","fields":{"priority":{"name":"Major"},"summary":"Fix login","status":{"name":"Open"}}}]}`), render.IssueList)

	out := Table(render.Headers(render.IssueList), rows)
	for _, want := range []string{"Key", "Priority", "Summary", "Status", "AB-1", "Major", "Fix login", "Open"} {
		assert.Contains(t, out, want)
	}
}

func TestTable_Placeholder(t *testing.T) {
	rows := render.Render([]byte(`{"worklogs":[]}`), render.WorklogShow)

	out := Table(render.Headers(render.WorklogShow), rows)
	assert.Contains(t, out, "Time Spent")
	assert.Contains(t, out, render.NoWorklogs)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), render.NoWorklogs))
}

func TestJSON(t *testing.T) {
	out := JSON([]byte(`{"a":1,"b":[1,2]}`), false)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": [1, 2]\n}", out)
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Success("Issue [%s] assigned to %s.", "AB-1", "jane")
	p.Error("Something went wrong.")

	assert.Contains(t, buf.String(), "Issue [AB-1] assigned to jane.")
	assert.Contains(t, buf.String(), "Something went wrong.")
}
