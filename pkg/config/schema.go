package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const fileSchema = `{
  "type": "object",
  "properties": {
    "paths": {
      "type": "object",
      "properties": {
        "base_path": {"type": "string"},
        "config_path": {"type": "string"},
        "cache_path": {"type": "string"}
      }
    },
    "auth": {
      "type": "object",
      "properties": {
        "base_uri": {"type": "string"},
        "username": {"type": "string"},
        "token_secret": {"type": "string"},
        "consumer_secret": {"type": "string"},
        "security_mode": {"type": "boolean"}
      }
    },
    "options": {
      "type": "object",
      "properties": {
        "status": {"type": "string"},
        "timezone": {"type": "string"},
        "jira_stop": {"$ref": "#/definitions/workflow"},
        "jira_start": {"$ref": "#/definitions/workflow"},
        "jira_review": {"$ref": "#/definitions/workflow"},
        "jira_done": {"$ref": "#/definitions/workflow"},
        "available_issues_status": {"type": "array", "items": {"type": "string"}},
        "is_use_cache": {"type": "boolean"},
        "encryption_key": {"type": "string"}
      }
    }
  },
  "definitions": {
    "workflow": {
      "type": "object",
      "properties": {"status": {"type": "string"}}
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(fileSchema)

// Validate checks raw config bytes against the document schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
