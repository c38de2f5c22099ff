package render

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// Query applies a JMESPath expression to a JSON body and returns the
// indented JSON result.
func Query(raw []byte, expression string) ([]byte, error) {
	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}
	if result == nil {
		return []byte("null"), nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return out, nil
}
