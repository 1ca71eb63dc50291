// Where: internal/domain/portdb/types.go
// What: Port database document model.
// Why: Mirror the JSON snapshot while keeping its key order intact.
package portdb

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ServiceEntry is one service registered under a port and protocol.
type ServiceEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Protocols maps a protocol name ("tcp", "udp", ...) to the services
// registered under it for a single port.
type Protocols = orderedmap.OrderedMap[string, []ServiceEntry]

// PortTable maps a decimal port string to its protocols.
type PortTable = orderedmap.OrderedMap[string, *Protocols]

// ProtocolPorts maps a protocol name to port numbers.
type ProtocolPorts = orderedmap.OrderedMap[string, []int]

// ServiceSummary aggregates every port a (name, description) pair uses.
type ServiceSummary struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Ports       *ProtocolPorts `json:"ports"`
}

// Database is the whole snapshot. It is replaced wholesale, never patched.
type Database struct {
	Ports    *PortTable       `json:"ports"`
	Services []ServiceSummary `json:"services"`
}

// New returns an empty database.
func New() *Database {
	return &Database{
		Ports:    orderedmap.New[string, *Protocols](),
		Services: []ServiceSummary{},
	}
}

// Decode parses a snapshot.
func Decode(payload []byte) (*Database, error) {
	var db Database
	if err := json.Unmarshal(payload, &db); err != nil {
		return nil, fmt.Errorf("decode database: %w", err)
	}
	if db.Ports == nil {
		db.Ports = orderedmap.New[string, *Protocols]()
	}
	if db.Services == nil {
		db.Services = []ServiceSummary{}
	}
	return &db, nil
}

// Encode serializes the database in its document order.
func (db *Database) Encode() ([]byte, error) {
	payload, err := json.Marshal(db)
	if err != nil {
		return nil, fmt.Errorf("encode database: %w", err)
	}
	return payload, nil
}

// PortCount returns the number of distinct ports in the table.
func (db *Database) PortCount() int {
	if db == nil || db.Ports == nil {
		return 0
	}
	return db.Ports.Len()
}
