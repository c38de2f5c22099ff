package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/gojira/gojira/pkg/jira"
	"github.com/gojira/gojira/pkg/render"
)

func newIssueListCmd(app *App) *cobra.Command {
	var project, issueType string

	cmd := &cobra.Command{
		Use:     "issue:list",
		Aliases: []string{"ls"},
		Short:   "List issues assigned to you",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.execute(cmd, execution{expect: http.StatusOK, mode: render.IssueList},
				func(ctx context.Context, c jira.Caller) (*jira.Result, error) {
					f, err := app.store.Load()
					if err != nil {
						return nil, err
					}
					jql := jira.AssignedIssuesJQL(issueType, project, f.Options.AvailableIssuesStatus)
					return jira.Search(ctx, c, jql, jira.SearchOptions{})
				})
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "only issues of this project key")
	cmd.Flags().StringVarP(&issueType, "type", "t", "", "only issues of this type")
	return cmd
}

func newIssueListInProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "issue:list:in-progress",
		Aliases: []string{"running"},
		Short:   "List your issues that are in progress",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.execute(cmd, execution{expect: http.StatusOK, mode: render.IssueListInProgress},
				func(ctx context.Context, c jira.Caller) (*jira.Result, error) {
					f, err := app.store.Load()
					if err != nil {
						return nil, err
					}
					return jira.Search(ctx, c, jira.InProgressJQL(f.Options.JiraStart.Status), jira.SearchOptions{})
				})
		},
	}
}

func newIssueAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "issue:assign <issue> [<user>]",
		Aliases: []string{"assign"},
		Short:   "Assign an issue, to yourself by default",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			issue := args[0]
			var user string
			if len(args) > 1 {
				user = args[1]
			}
			if user == "" && app.ready() && app.auth.IsAuthenticated() {
				name, err := app.auth.Username()
				if err != nil {
					app.report(err)
					return nil
				}
				user = name
			}

			return app.execute(cmd, execution{
				expect:  http.StatusNoContent,
				success: fmt.Sprintf("Issue [%s] assigned to %s.", issue, user),
			}, func(ctx context.Context, c jira.Caller) (*jira.Result, error) {
				return jira.AssignIssue(ctx, c, issue, user)
			})
		},
	}
}
