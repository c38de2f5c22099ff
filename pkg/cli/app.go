// Package cli wires the gojira commands.
package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gojira/gojira/pkg/auth"
	"github.com/gojira/gojira/pkg/cache"
	"github.com/gojira/gojira/pkg/config"
	"github.com/gojira/gojira/pkg/console"
	"github.com/gojira/gojira/pkg/jira"
)

// EnvPrefix namespaces the environment variables read through viper.
const EnvPrefix = "GOJIRA"

// Options are the dependencies supplied by the binary or a test.
type Options struct {
	Version   string
	Stdout    io.Writer
	Stderr    io.Writer
	Prompter  Prompter
	Transport http.RoundTripper
	Now       func() time.Time
}

// App carries the per-invocation dependencies shared by every command.
// Fields are filled in by setup once flags have been parsed.
type App struct {
	opts   Options
	v      *viper.Viper
	out    *console.Printer
	logger *log.Logger

	store  *config.Store
	auth   auth.Provider
	client *jira.Client
	cache  cache.Cache
}

func newApp(opts Options) *App {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Prompter == nil {
		opts.Prompter = FormPrompter{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	return &App{
		opts:   opts,
		v:      viper.New(),
		out:    console.NewPrinter(opts.Stdout, isTerminal(opts.Stdout)),
		logger: log.NewWithOptions(opts.Stderr, log.Options{Prefix: "gojira"}),
	}
}

// setup runs before every command: it loads .env, binds flags and
// environment, and builds the store and auth provider.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		a.logger.Warn("failed to load .env file", "err", err)
	}

	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if a.v.GetBool("debug") {
		a.logger.SetLevel(log.DebugLevel)
	}

	home := a.v.GetString("home")
	if home == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			a.report(err)
			return nil
		}
		home = dir
	}
	a.logger.Debug("using config folder", "path", home)

	a.store = config.NewStore(home)
	a.auth = auth.NewBasic(a.store)
	return nil
}

// ready reports whether setup produced a store. Commands skip their work
// when it did not; the reason has already been printed.
func (a *App) ready() bool {
	return a.store != nil
}

// teardown releases resources opened while running a command.
func (a *App) teardown(_ *cobra.Command, _ []string) {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Debug("failed to close cache", "err", err)
		}
		a.cache = nil
	}
}

// jiraClient builds the REST client from the stored configuration.
func (a *App) jiraClient() (*jira.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	f, err := a.store.Load()
	if err != nil {
		return nil, err
	}

	opts := []jira.Option{
		jira.WithLogger(a.logger),
		jira.WithTimeout(a.v.GetDuration("timeout")),
		jira.WithRateLimit(a.v.GetFloat64("rate-limit")),
	}
	if a.opts.Transport != nil {
		opts = append(opts, jira.WithTransport(a.opts.Transport))
	}
	if f.Options.UseCache {
		path := f.Paths.CachePath
		if path == "" {
			path = a.store.CachePath()
		}
		c, err := cache.OpenSQLite(path, cache.DefaultTTL)
		if err != nil {
			a.logger.Warn("response cache disabled", "err", err)
		} else {
			a.cache = c
			opts = append(opts, jira.WithCache(c))
		}
	}

	a.client = jira.NewClient(f.Auth.BaseURI, a.auth, opts...)
	if err := a.client.Init(); err != nil {
		return nil, err
	}
	return a.client, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
