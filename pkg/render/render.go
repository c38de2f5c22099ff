// Package render projects raw Jira responses into table rows.
package render

import (
	"github.com/tidwall/gjson"
)

// Mode selects how a response body is projected.
type Mode int

const (
	IssueList Mode = iota + 1
	IssueListInProgress
	WorklogShow
	WorklogAdd
	WorklogUpdate
	TransitionList
)

func (m Mode) String() string {
	switch m {
	case IssueList:
		return "issue-list"
	case IssueListInProgress:
		return "issue-list-in-progress"
	case WorklogShow:
		return "worklog-show"
	case WorklogAdd:
		return "worklog-add"
	case WorklogUpdate:
		return "worklog-update"
	case TransitionList:
		return "transition-list"
	default:
		return "unknown"
	}
}

// Placeholder texts for empty results.
const (
	NoIssues      = "No issues found."
	NoWorklogs    = "No work yet logged."
	NoTransitions = "No transitions available."
)

var (
	issueHeaders      = []string{"Key", "Priority", "Summary", "Status"}
	worklogHeaders    = []string{"ID", "Date", "Author", "Time Spent", "Comment"}
	transitionHeaders = []string{"ID", "Name", "To Status"}
)

// Headers returns the column headers for mode, or nil for an unknown mode.
func Headers(m Mode) []string {
	switch m {
	case IssueList, IssueListInProgress:
		return issueHeaders
	case WorklogShow, WorklogAdd, WorklogUpdate:
		return worklogHeaders
	case TransitionList:
		return transitionHeaders
	default:
		return nil
	}
}

// Render turns a response body into rows. Empty lists produce a single
// spanning placeholder row. Unknown modes produce nil.
func Render(raw []byte, m Mode) []Row {
	body := gjson.ParseBytes(raw)

	switch m {
	case IssueList, IssueListInProgress:
		return issueRows(body)
	case WorklogShow:
		return worklogRows(body)
	case WorklogAdd, WorklogUpdate:
		return []Row{worklogRow(body)}
	case TransitionList:
		return transitionRows(body)
	default:
		return nil
	}
}

func issueRows(body gjson.Result) []Row {
	issues := body.Get("issues").Array()
	if len(issues) == 0 {
		return []Row{placeholder(NoIssues, len(issueHeaders))}
	}

	rows := make([]Row, 0, len(issues))
	for _, issue := range issues {
		priority := issue.Get("fields.priority.name").String()
		rows = append(rows, Row{
			{Text: issue.Get("key").String(), Style: StyleKey},
			{Text: priority, Style: PriorityStyle(priority)},
			{Text: Truncate(issue.Get("fields.summary").String())},
			{Text: issue.Get("fields.status.name").String()},
		})
	}
	return rows
}

func worklogRows(body gjson.Result) []Row {
	worklogs := body.Get("worklogs").Array()
	if len(worklogs) == 0 {
		return []Row{placeholder(NoWorklogs, len(worklogHeaders))}
	}

	rows := make([]Row, 0, len(worklogs))
	for _, w := range worklogs {
		rows = append(rows, worklogRow(w))
	}
	return rows
}

func worklogRow(w gjson.Result) Row {
	return Row{
		{Text: w.Get("id").String()},
		{Text: w.Get("created").String()},
		{Text: w.Get("author.displayName").String()},
		{Text: w.Get("timeSpent").String()},
		{Text: Truncate(w.Get("comment").String())},
	}
}

func transitionRows(body gjson.Result) []Row {
	transitions := body.Get("transitions").Array()
	if len(transitions) == 0 {
		return []Row{placeholder(NoTransitions, len(transitionHeaders))}
	}

	rows := make([]Row, 0, len(transitions))
	for _, t := range transitions {
		rows = append(rows, Row{
			{Text: t.Get("id").String()},
			{Text: t.Get("name").String()},
			{Text: t.Get("to.name").String()},
		})
	}
	return rows
}
