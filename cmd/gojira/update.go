package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

const repoSlug = "gojira/gojira"

var errDevBuild = errors.New("gojira was built from source without a release version; install a release to use update")

// updater replaces the running binary with the newest GitHub release.
// detect and apply are swapped out in tests.
type updater struct {
	current string
	detect  func(slug string) (*selfupdate.Release, bool, error)
	apply   func(assetURL, exe string) error
	exe     func() (string, error)
}

func newUpdater(current string) *updater {
	return &updater{
		current: current,
		detect:  selfupdate.DetectLatest,
		apply:   selfupdate.UpdateTo,
		exe:     os.Executable,
	}
}

// run checks for a newer release and, unless checkOnly, installs it once the
// user answers yes on in.
func (u *updater) run(out io.Writer, in io.Reader, checkOnly bool) error {
	if u.current == "dev" {
		return errDevBuild
	}
	running, err := semver.ParseTolerant(u.current)
	if err != nil {
		return fmt.Errorf("gojira version %q is not a release version: %w", u.current, err)
	}

	rel, found, err := u.detect(repoSlug)
	if err != nil {
		return fmt.Errorf("cannot query releases of %s: %w", repoSlug, err)
	}
	if !found || rel.Version.LTE(running) {
		fmt.Fprintf(out, "gojira %s is up to date.\n", running)
		return nil
	}

	fmt.Fprintf(out, "gojira %s is available, you have %s.\n", rel.Version, running)
	if checkOnly {
		return nil
	}

	fmt.Fprintf(out, "Install gojira %s now? [y/N] ", rel.Version)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
	default:
		fmt.Fprintln(out, "Update skipped.")
		return nil
	}

	exe, err := u.exe()
	if err != nil {
		return fmt.Errorf("cannot find the gojira binary: %w", err)
	}
	if err := u.apply(rel.AssetURL, exe); err != nil {
		return fmt.Errorf("installing gojira %s: %w", rel.Version, err)
	}
	fmt.Fprintf(out, "gojira is now at %s.\n", rel.Version)
	return nil
}

func newUpdateCmd(u *updater) *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:     "update",
		Aliases: []string{"self-update"},
		Short:   "Update gojira to the latest release",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return u.run(cmd.OutOrStdout(), cmd.InOrStdin(), checkOnly)
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether a newer release exists")
	return cmd
}
