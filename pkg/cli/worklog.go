package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/gojira/gojira/pkg/jira"
	"github.com/gojira/gojira/pkg/render"
)

type adjustFlags struct {
	mode        string
	newEstimate string
	reduceBy    string
}

func (f *adjustFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "adjust-estimate", "", "how to change the remaining estimate (new, leave, manual, auto)")
	cmd.Flags().StringVar(&f.newEstimate, "new-estimate", "", "remaining estimate when --adjust-estimate=new")
	cmd.Flags().StringVar(&f.reduceBy, "reduce-by", "", "amount to reduce the estimate by when --adjust-estimate=manual")
}

func (f *adjustFlags) adjustment() jira.Adjustment {
	return jira.Adjustment{Mode: f.mode, NewEstimate: f.newEstimate, ReduceBy: f.reduceBy}
}

// startedAt formats --startedAt in the configured timezone. Empty input
// means now when defaultNow is set, otherwise it is left out.
func (a *App) startedAt(value string, defaultNow bool) (string, error) {
	if value == "" && !defaultNow {
		return "", nil
	}

	f, err := a.store.Load()
	if err != nil {
		return "", err
	}
	loc, err := f.Options.Location()
	if err != nil {
		return "", &userError{msg: err.Error()}
	}
	t, err := jira.ParseStarted(value, loc, a.opts.Now())
	if err != nil {
		return "", &userError{msg: err.Error()}
	}
	return jira.FormatStarted(t, loc), nil
}

func optionalArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

func newWorklogAddCmd(app *App) *cobra.Command {
	var started string
	var adjust adjustFlags

	cmd := &cobra.Command{
		Use:     "worklog:add <issue> <timeSpent> [<comment>]",
		Aliases: []string{"wlog:a", "worklogadd"},
		Short:   "Log work on an issue",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			issue := args[0]
			ex := execution{
				expect:  http.StatusCreated,
				mode:    render.WorklogAdd,
				success: fmt.Sprintf("Worklog to issue [%s] was added!", issue),
			}
			return app.execute(cmd, ex, func(ctx context.Context, c jira.Caller) (*jira.Result, error) {
				ts, err := app.startedAt(started, true)
				if err != nil {
					return nil, err
				}
				return jira.AddWorklog(ctx, c, issue, jira.WorklogInput{
					TimeSpent: args[1],
					Comment:   optionalArg(args, 2),
					Started:   ts,
					Adjust:    adjust.adjustment(),
				})
			})
		},
	}
	cmd.Flags().StringVarP(&started, "startedAt", "s", "", "when the work started (default now)")
	adjust.register(cmd)
	return cmd
}

func newWorklogUpdateCmd(app *App) *cobra.Command {
	var started string
	var adjust adjustFlags

	cmd := &cobra.Command{
		Use:     "worklog:update <issue> <worklogId> <timeSpent> [<comment>]",
		Aliases: []string{"wlog:u"},
		Short:   "Change an existing worklog",
		Args:    cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			issue, id := args[0], args[1]
			ex := execution{
				expect:  http.StatusOK,
				mode:    render.WorklogUpdate,
				success: fmt.Sprintf("Worklog [%s] of issue [%s] was updated!", id, issue),
			}
			return app.execute(cmd, ex, func(ctx context.Context, c jira.Caller) (*jira.Result, error) {
				ts, err := app.startedAt(started, false)
				if err != nil {
					return nil, err
				}
				return jira.UpdateWorklog(ctx, c, issue, id, jira.WorklogInput{
					TimeSpent: args[2],
					Comment:   optionalArg(args, 3),
					Started:   ts,
					Adjust:    adjust.adjustment(),
				})
			})
		},
	}
	cmd.Flags().StringVarP(&started, "startedAt", "s", "", "when the work started")
	adjust.register(cmd)
	return cmd
}

func newWorklogDeleteCmd(app *App) *cobra.Command {
	var adjust adjustFlags

	cmd := &cobra.Command{
		Use:     "worklog:delete <issue> <worklogId>",
		Aliases: []string{"wlog:d"},
		Short:   "Delete a worklog",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			issue, id := args[0], args[1]
			ex := execution{
				expect:  http.StatusNoContent,
				success: fmt.Sprintf("Worklog [%s] of issue [%s] was deleted!", id, issue),
			}
			return app.execute(cmd, ex, func(ctx context.Context, c jira.Caller) (*jira.Result, error) {
				return jira.DeleteWorklog(ctx, c, issue, id, adjust.adjustment())
			})
		},
	}
	adjust.register(cmd)
	return cmd
}

func newWorklogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "worklog:show <issue>",
		Aliases: []string{"wlog:s"},
		Short:   "List the worklogs of an issue",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.execute(cmd, execution{expect: http.StatusOK, mode: render.WorklogShow},
				func(ctx context.Context, c jira.Caller) (*jira.Result, error) {
					return jira.ListWorklogs(ctx, c, args[0])
				})
		},
	}
}
