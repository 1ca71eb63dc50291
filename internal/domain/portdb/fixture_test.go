// Where: internal/domain/portdb/fixture_test.go
// What: Shared database fixtures for portdb tests.
// Why: Keep lookup and list tests working from the same snapshot text.
package portdb

import "testing"

const sampleSnapshot = `{
  "ports": {
    "80": {"tcp": [{"name": "http", "description": "World Wide Web HTTP"}]},
    "53": {
      "udp": [{"name": "domain", "description": "Domain Name Server"}],
      "tcp": [
        {"name": "domain", "description": "Domain Name Server"},
        {"name": "dns-alt", "description": "Alternate DNS"}
      ]
    }
  },
  "services": [
    {"name": "http", "description": "World Wide Web HTTP", "ports": {"tcp": [80, 8080]}},
    {"name": "domain", "description": "Domain Name Server", "ports": {"udp": [53], "tcp": [53]}},
    {"name": "dns-alt", "description": "Alternate DNS", "ports": {"tcp": [53]}}
  ]
}`

func mustDecode(t *testing.T, payload string) *Database {
	t.Helper()
	db, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return db
}
