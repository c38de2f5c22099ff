// Package config persists gojira credentials and options under the user's
// home directory.
package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
)

const (
	// FolderName is the application directory created in the home directory.
	FolderName     = ".gojira"
	ConfigFileName = "config.json"
	CacheFileName  = "cache.db"

	DefaultTimezone = "Australia/Sydney"
)

// Workflow aliases used by the issue:transit commands.
const (
	AliasStart  = "start"
	AliasStop   = "stop"
	AliasReview = "review"
	AliasDone   = "done"
)

// File is the on-disk configuration document.
type File struct {
	Paths   Paths   `json:"paths"`
	Auth    Auth    `json:"auth"`
	Options Options `json:"options"`
}

type Paths struct {
	BasePath   string `json:"base_path"`
	ConfigPath string `json:"config_path"`
	CachePath  string `json:"cache_path"`
}

// Auth holds the credential record. TokenSecret is base64("user:password"),
// encrypted when SecurityMode is set.
type Auth struct {
	BaseURI        string `json:"base_uri"`
	Username       string `json:"username"`
	TokenSecret    string `json:"token_secret"`
	ConsumerSecret string `json:"consumer_secret"`
	SecurityMode   bool   `json:"security_mode"`
}

type WorkflowStatus struct {
	Status string `json:"status"`
}

type Options struct {
	Status                string         `json:"status,omitempty"`
	Timezone              string         `json:"timezone"`
	JiraStop              WorkflowStatus `json:"jira_stop"`
	JiraStart             WorkflowStatus `json:"jira_start"`
	JiraReview            WorkflowStatus `json:"jira_review"`
	JiraDone              WorkflowStatus `json:"jira_done"`
	AvailableIssuesStatus []string       `json:"available_issues_status"`
	UseCache              bool           `json:"is_use_cache"`
	EncryptionKey         string         `json:"encryption_key,omitempty"`
}

// DefaultOptions returns the options written on first setup.
func DefaultOptions() Options {
	return Options{
		Timezone:   DefaultTimezone,
		JiraStop:   WorkflowStatus{Status: "To Do"},
		JiraStart:  WorkflowStatus{Status: "In Progress"},
		JiraReview: WorkflowStatus{Status: "In Review"},
		JiraDone:   WorkflowStatus{Status: "Done"},
		AvailableIssuesStatus: []string{
			"Open",
			"In Progress",
			"Reopened",
			"To Do",
			"In Review",
			"Blocked",
			"Internal Testing",
		},
	}
}

// NewAuth builds a credential record with a fresh consumer secret.
func NewAuth(baseURI, username, token string) Auth {
	return Auth{
		BaseURI:        NormalizeBaseURI(baseURI),
		Username:       username,
		TokenSecret:    token,
		ConsumerSecret: uuid.NewString(),
	}
}

// NormalizeBaseURI trims whitespace and guarantees a single trailing slash.
func NormalizeBaseURI(uri string) string {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return ""
	}
	return strings.TrimRight(uri, "/") + "/"
}

// Location resolves the configured timezone, defaulting when unset.
func (o Options) Location() (*time.Location, error) {
	tz := o.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	return loc, nil
}

// WorkflowStatus returns the target status configured for a workflow alias.
func (o Options) WorkflowStatus(alias string) (string, bool) {
	var s string
	switch alias {
	case AliasStart:
		s = o.JiraStart.Status
	case AliasStop:
		s = o.JiraStop.Status
	case AliasReview:
		s = o.JiraReview.Status
	case AliasDone:
		s = o.JiraDone.Status
	}
	return s, s != ""
}
