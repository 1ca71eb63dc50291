// Where: internal/infra/config/validate.go
// What: Config file validation against the embedded JSON schema.
// Why: Report misspelled keys instead of silently ignoring them.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	k8syaml "sigs.k8s.io/yaml"
)

const schemaURL = "https://portid.invalid/config.schema.json"

//go:embed schema/config.schema.json
var schemaSource []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// validateFile checks a YAML config document. Failures match errInvalidConfig.
func validateFile(path string, payload []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load config schema: %w", err)
	}

	jsonBytes, err := k8syaml.YAMLToJSON(payload)
	if err != nil {
		return fmt.Errorf("%w %s: %w", errInvalidConfig, path, err)
	}
	var document any
	if err := json.Unmarshal(jsonBytes, &document); err != nil {
		return fmt.Errorf("%w %s: %w", errInvalidConfig, path, err)
	}
	if err := sch.Validate(document); err != nil {
		return fmt.Errorf("%w %s: %w", errInvalidConfig, path, err)
	}
	return nil
}
