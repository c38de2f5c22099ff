package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/gojira/gojira/pkg/config"
	"github.com/gojira/gojira/pkg/jira"
	"github.com/gojira/gojira/pkg/render"
)

const (
	msgNotConfigured = "You are not authorized yet. Run \"gojira config\" first."
	msgGenericError  = "Something went wrong."
)

// apiCall performs the endpoint work of a command.
type apiCall func(ctx context.Context, c jira.Caller) (*jira.Result, error)

// execution describes how a command's result is checked and shown.
type execution struct {
	expect  int
	mode    render.Mode
	success string
}

// userError is shown to the user verbatim.
type userError struct {
	msg string
}

func (e *userError) Error() string { return e.msg }

// execute runs fn against the configured client and prints its outcome.
// Failures are reported on the console; the command itself succeeds.
func (a *App) execute(cmd *cobra.Command, ex execution, fn apiCall) error {
	if !a.ready() {
		return nil
	}
	if !a.auth.IsAuthenticated() {
		a.out.Error(msgNotConfigured)
		return nil
	}

	client, err := a.jiraClient()
	if err != nil {
		a.report(err)
		return nil
	}

	res, err := fn(cmd.Context(), client)
	if err != nil {
		a.report(err)
		return nil
	}

	if res.StatusCode != ex.expect {
		a.logger.Debug("unexpected status", "want", ex.expect, "got", res.StatusCode)
		a.out.Error(msgGenericError)
		return nil
	}

	if ex.mode != 0 {
		a.show(res.Raw, ex.mode)
	}
	if ex.success != "" {
		a.out.Success("%s", ex.success)
	}
	return nil
}

// show prints a result as a table, or as JSON when --query is set.
func (a *App) show(raw []byte, mode render.Mode) {
	if expr := a.v.GetString("query"); expr != "" {
		out, err := render.Query(raw, expr)
		if err != nil {
			a.out.Error("%v", err)
			return
		}
		a.out.JSON(out)
		return
	}
	a.out.Table(render.Headers(mode), render.Render(raw, mode))
}

// report maps an error onto the message shown to the user.
func (a *App) report(err error) {
	var (
		notFound     *jira.NotFoundError
		unauthorized *jira.UnauthorizedError
		cfgErr       *config.ConfigurationError
		uErr         *userError
	)

	switch {
	case errors.As(err, &notFound):
		a.out.Error("%s", http.StatusText(http.StatusNotFound))
		for _, m := range notFound.Messages {
			a.out.Error("%s", m)
		}
	case errors.As(err, &unauthorized):
		a.out.Error("%s", http.StatusText(http.StatusUnauthorized))
	case errors.As(err, &cfgErr):
		a.out.Error("%v", cfgErr)
	case errors.As(err, &uErr):
		a.out.Error("%s", uErr.msg)
	default:
		a.out.Error(msgGenericError)
	}
	a.logger.Debug("command failed", "err", err)
}
