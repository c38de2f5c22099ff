package config

import (
	"encoding/json"
	"fmt"
)

// Encode serializes a configuration document.
func Encode(f *File) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Decode parses a configuration document produced by Encode.
func Decode(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &f, nil
}
