// Where: internal/infra/config/env_file.go
// What: .env file loading.
// Why: Let users pin PORTID_* settings per directory without exporting them.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads path into the process environment without overriding
// variables that are already set. With an empty path, ./.env is loaded when
// present.
func LoadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
