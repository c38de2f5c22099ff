package cli

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
)

// SetupAnswers is what the interactive setup collects.
type SetupAnswers struct {
	BaseURI      string
	Username     string
	Password     string
	Timezone     string
	UseCache     bool
	SecurityMode bool
}

// Prompter asks the user for their credentials.
type Prompter interface {
	Setup(defaults SetupAnswers) (SetupAnswers, error)
}

// FormPrompter asks through a terminal form.
type FormPrompter struct{}

func (FormPrompter) Setup(defaults SetupAnswers) (SetupAnswers, error) {
	a := defaults

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Jira URL").
				Placeholder("https://your-company.atlassian.net").
				Value(&a.BaseURI).
				Validate(validateBaseURI),
			huh.NewInput().
				Title("Username").
				Value(&a.Username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&a.Password).
				Validate(required("password")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone").
				Description("Used for worklog start times.").
				Value(&a.Timezone).
				Validate(validateTimezone),
			huh.NewConfirm().
				Title("Cache GET responses for a few minutes?").
				Value(&a.UseCache),
			huh.NewConfirm().
				Title("Encrypt the stored token?").
				Value(&a.SecurityMode),
		),
	)

	if err := form.Run(); err != nil {
		return SetupAnswers{}, err
	}
	return a, nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func validateBaseURI(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("enter a full http(s) URL")
	}
	return nil
}

func validateTimezone(s string) error {
	if _, err := time.LoadLocation(strings.TrimSpace(s)); err != nil {
		return errors.New("unknown timezone")
	}
	return nil
}
