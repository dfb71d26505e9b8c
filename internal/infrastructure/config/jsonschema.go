package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

const schemaFileName = "config.schema.json"

// Schema describes config.toml for editors and validators.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:              "toml",
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/bnema/webshell/config.schema.json"
	schema.Title = "WebShell Configuration"
	schema.Description = "Configuration schema for WebShell, a desktop shell hosting one web application"
	return schema
}

// WriteSchema writes Schema as indented JSON.
func WriteSchema(w io.Writer) error {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	return nil
}

// GenerateSchemaFile writes the schema next to config.toml.
func GenerateSchemaFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	path := filepath.Join(configDir, schemaFileName)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return "", fmt.Errorf("failed to create schema file: %w", err)
	}
	if err := WriteSchema(f); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}
