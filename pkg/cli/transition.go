package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/gojira/gojira/pkg/config"
	"github.com/gojira/gojira/pkg/jira"
	"github.com/gojira/gojira/pkg/render"
)

var transitionAliases = []string{config.AliasStart, config.AliasStop, config.AliasReview, config.AliasDone}

func newTransitionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "issue:transit:get <issue>",
		Short: "List the transitions available on an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.execute(cmd, execution{expect: http.StatusOK, mode: render.TransitionList},
				func(ctx context.Context, c jira.Caller) (*jira.Result, error) {
					return jira.ListTransitions(ctx, c, args[0], "transitions.fields")
				})
		},
	}
}

// newTransitionCmd moves an issue to the status configured for alias.
func newTransitionCmd(app *App, alias string) *cobra.Command {
	var resolution string

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("issue:transit:%s <issue>", alias),
		Short: fmt.Sprintf("Move an issue to its %q status", alias),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			issue := args[0]

			ex := execution{expect: http.StatusNoContent}
			return app.execute(cmd, ex, func(ctx context.Context, c jira.Caller) (*jira.Result, error) {
				f, err := app.store.Load()
				if err != nil {
					return nil, err
				}
				status, ok := f.Options.WorkflowStatus(alias)
				if !ok {
					return nil, &userError{msg: fmt.Sprintf("No status configured for %q.", alias)}
				}

				res, err := jira.ListTransitions(ctx, c, issue, "")
				if err != nil {
					return nil, err
				}
				id, ok := jira.FindTransition(res.Raw, status)
				if !ok {
					return nil, &userError{msg: fmt.Sprintf("Issue [%s] cannot be moved to %s.", issue, status)}
				}

				res, err = jira.DoTransition(ctx, c, issue, id, resolution)
				if err == nil && res.StatusCode == http.StatusNoContent {
					app.out.Success("Issue [%s] moved to %s.", issue, status)
				}
				return res, err
			})
		},
	}
	if alias == config.AliasDone {
		cmd.Flags().StringVarP(&resolution, "resolution", "r", "", "resolution id to set")
	}
	return cmd
}
