package jira

import (
	"net/url"
	"strings"
)

// AssignedIssuesJQL builds the query-encoded JQL for issues assigned to the
// current user in any of statuses, ordered by priority then key. No
// statuses means no status filter.
func AssignedIssuesJQL(issueType, project string, statuses []string) string {
	var sb strings.Builder
	sb.WriteString("assignee=currentUser()")
	if issueType != "" {
		sb.WriteString("+AND+type=" + quote(issueType))
	}
	if project != "" {
		sb.WriteString("+AND+project=" + quote(project))
	}

	// An empty list would make "status in ()", which Jira rejects.
	if len(statuses) > 0 {
		quoted := make([]string, len(statuses))
		for i, s := range statuses {
			quoted[i] = quote(s)
		}
		sb.WriteString("+AND+status+in+(" + strings.Join(quoted, ",") + ")")
	}
	sb.WriteString("+order+by+priority+DESC,+key+ASC")
	return sb.String()
}

// InProgressJQL selects the current user's issues in the given status.
func InProgressJQL(status string) string {
	return AssignedIssuesJQL("", "", []string{status})
}

func quote(v string) string {
	return `"` + url.QueryEscape(v) + `"`
}
