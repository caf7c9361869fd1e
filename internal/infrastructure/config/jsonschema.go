package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of Config as indented JSON.
func Schema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.FieldNameTag = "toml"
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/chaoxe/miniapp/config.schema.json"
	schema.Title = "chaoxe configuration"
	schema.Description = "Configuration schema for the chaoxe mini-program host toolkit"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile writes the configuration schema to path.
func GenerateSchemaFile(path string) error {
	data, err := Schema()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
