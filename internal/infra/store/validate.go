// Where: internal/infra/store/validate.go
// What: Snapshot validation against the embedded JSON schema.
// Why: Refuse to install a download that the lookup path could not read.
package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/antipatico/portid/internal/domain/portdb"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://portid.invalid/portid.schema.json"

//go:embed schema/portid.schema.json
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

// Validate checks that payload is a well-formed database snapshot.
// Failures match portdb.ErrDatabaseUnreadable.
func Validate(payload []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	var document any
	if err := json.Unmarshal(payload, &document); err != nil {
		return fmt.Errorf("%w: %w", portdb.ErrDatabaseUnreadable, err)
	}
	if err := sch.Validate(document); err != nil {
		return fmt.Errorf("%w: %w", portdb.ErrDatabaseUnreadable, err)
	}
	return nil
}
