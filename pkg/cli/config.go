package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gojira/gojira/pkg/auth"
	"github.com/gojira/gojira/pkg/config"
	"github.com/gojira/gojira/pkg/secret"
)

const redacted = "********"

func newConfigCmd(app *App) *cobra.Command {
	var clearStored bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Store your Jira credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.ready() {
				return nil
			}
			if clearStored {
				res, err := app.store.Clear()
				if err != nil {
					app.report(err)
					return nil
				}
				app.out.Success("%s", res.Message)
			}

			if app.auth.IsAuthenticated() {
				app.out.Success("STATUS: [Authorized]")
				app.out.Markdown(commandOverview(cmd.Root()))
				return nil
			}

			return app.configure()
		},
	}
	cmd.Flags().BoolVar(&clearStored, "clear", false, "delete stored credentials before configuring")
	return cmd
}

// configure asks for credentials and writes the configuration file.
func (a *App) configure() error {
	answers, err := a.opts.Prompter.Setup(SetupAnswers{Timezone: config.DefaultTimezone})
	if err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}

	token := auth.NewCredential(strings.TrimSpace(answers.Username), answers.Password)
	creds := config.NewAuth(answers.BaseURI, strings.TrimSpace(answers.Username), token)

	opts := config.DefaultOptions()
	if tz := strings.TrimSpace(answers.Timezone); tz != "" {
		opts.Timezone = tz
	}
	opts.UseCache = answers.UseCache

	if answers.SecurityMode {
		key, err := secret.GenerateKey()
		if err != nil {
			a.report(err)
			return nil
		}
		enc, err := secret.NewEncryptor(key)
		if err != nil {
			a.report(err)
			return nil
		}
		sealed, err := enc.Encrypt(token)
		if err != nil {
			a.report(err)
			return nil
		}
		creds.TokenSecret = sealed
		creds.SecurityMode = true
		opts.EncryptionKey = key
	}

	res, err := a.store.Save(&config.File{Auth: creds, Options: opts})
	if err != nil {
		a.report(err)
		return nil
	}
	a.out.Success("%s", res.Message)
	return nil
}

func newConfigShowCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config:show",
		Short: "Print the stored configuration with secrets hidden",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.ready() {
				return nil
			}
			if !app.auth.IsAuthenticated() {
				app.out.Error(msgNotConfigured)
				return nil
			}

			f, err := app.store.Load()
			if err != nil {
				app.report(err)
				return nil
			}

			if !f.Auth.SecurityMode {
				if user, _, err := auth.DecodeCredential(f.Auth.TokenSecret); err != nil || user != f.Auth.Username {
					app.out.Error("Stored token does not belong to %s. Run \"gojira config --clear\".", f.Auth.Username)
				}
			}

			out, err := redactedConfig(f, format)
			if err != nil {
				app.out.Error("%v", err)
				return nil
			}
			app.out.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml or json)")
	return cmd
}

func redactedConfig(f *config.File, format string) (string, error) {
	shown := *f
	if shown.Auth.TokenSecret != "" {
		shown.Auth.TokenSecret = redacted
	}
	if shown.Options.EncryptionKey != "" {
		shown.Options.EncryptionKey = redacted
	}

	data, err := config.Encode(&shown)
	if err != nil {
		return "", err
	}

	switch format {
	case "json":
		return string(data), nil
	case "yaml":
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return "", err
		}
		out, err := yaml.Marshal(doc)
		if err != nil {
			return "", fmt.Errorf("failed to marshal yaml: %w", err)
		}
		return strings.TrimRight(string(out), "\n"), nil
	default:
		return "", fmt.Errorf("unknown format %q (use yaml or json)", format)
	}
}

// commandOverview lists the available commands as a markdown table.
func commandOverview(root *cobra.Command) string {
	var cmds []*cobra.Command
	for _, c := range root.Commands() {
		if c.IsAvailableCommand() {
			cmds = append(cmds, c)
		}
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })

	var sb strings.Builder
	sb.WriteString("## Available commands\n\n| Command | Description |\n| --- | --- |\n")
	for _, c := range cmds {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", c.Use, c.Short)
	}
	return sb.String()
}
