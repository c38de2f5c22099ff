package cli

import (
	"github.com/spf13/cobra"

	"github.com/gojira/gojira/pkg/jira"
)

// NewRootCommand builds the gojira command tree.
func NewRootCommand(opts Options) *cobra.Command {
	app := newApp(opts)

	root := &cobra.Command{
		Use:   "gojira",
		Short: "Jira from your terminal",
		Long: `Gojira lists your Jira issues, logs work and moves issues through
their workflow without leaving the terminal.

Run "gojira config" once to store your credentials.`,
		Version:           app.opts.Version,
		SilenceUsage:      true,
		PersistentPreRunE: app.setup,
		PersistentPostRun: app.teardown,
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	}
	root.SetOut(app.opts.Stdout)
	root.SetErr(app.opts.Stderr)

	flags := root.PersistentFlags()
	flags.String("home", "", "config folder (default is ~/.gojira, env GOJIRA_HOME)")
	flags.Bool("debug", false, "log requests and responses to stderr")
	flags.Duration("timeout", jira.DefaultTimeout, "request timeout")
	flags.Float64("rate-limit", 0, "maximum requests per second (0 means unlimited)")
	flags.String("query", "", "JMESPath expression applied to list output instead of a table")

	root.AddCommand(
		newConfigCmd(app),
		newConfigShowCmd(app),
		newIssueListCmd(app),
		newIssueListInProgressCmd(app),
		newIssueAssignCmd(app),
		newTransitionListCmd(app),
		newVersionCmd(app),
	)
	for _, alias := range transitionAliases {
		root.AddCommand(newTransitionCmd(app, alias))
	}
	root.AddCommand(
		newWorklogAddCmd(app),
		newWorklogUpdateCmd(app),
		newWorklogDeleteCmd(app),
		newWorklogShowCmd(app),
	)

	return root
}
