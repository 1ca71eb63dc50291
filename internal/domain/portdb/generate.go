// Where: internal/domain/portdb/generate.go
// What: Build a database from the upstream "port/protocol" listing.
// Why: Produce the snapshot format offline from the public ports list.
package portdb

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// UpstreamEntry is one record of the upstream listing.
type UpstreamEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Upstream maps "port/protocol" keys to entries, in listing order.
type Upstream = orderedmap.OrderedMap[string, UpstreamEntry]

// GenerateStats counts what Generate kept and dropped.
type GenerateStats struct {
	Entries        int
	Services       int
	SkippedEmpty   int
	SkippedInvalid int
}

// ParseUpstream decodes an upstream listing.
func ParseUpstream(r io.Reader) (*Upstream, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upstream listing: %w", err)
	}
	upstream := orderedmap.New[string, UpstreamEntry]()
	if err := json.Unmarshal(payload, upstream); err != nil {
		return nil, fmt.Errorf("decode upstream listing: %w", err)
	}
	return upstream, nil
}

type summaryKey struct {
	name        string
	description string
}

// Generate builds a database from upstream. Entries with an empty name and
// keys that are not "port/protocol" with a port in range are skipped.
// Each (name, description) pair gets exactly one ServiceSummary.
func Generate(upstream *Upstream) (*Database, GenerateStats) {
	db := New()
	var stats GenerateStats
	if upstream == nil {
		return db, stats
	}

	summaries := map[summaryKey]int{}
	for pair := upstream.Oldest(); pair != nil; pair = pair.Next() {
		port, protocol, ok := splitUpstreamKey(pair.Key)
		if !ok {
			stats.SkippedInvalid++
			continue
		}
		entry := pair.Value
		if entry.Name == "" {
			stats.SkippedEmpty++
			continue
		}

		db.addEntry(port, protocol, ServiceEntry{Name: entry.Name, Description: entry.Description})
		stats.Entries++

		key := summaryKey{name: entry.Name, description: entry.Description}
		idx, exists := summaries[key]
		if !exists {
			idx = len(db.Services)
			summaries[key] = idx
			db.Services = append(db.Services, ServiceSummary{
				Name:        entry.Name,
				Description: entry.Description,
				Ports:       orderedmap.New[string, []int](),
			})
		}
		ports := db.Services[idx].Ports
		existing, _ := ports.Get(protocol)
		ports.Set(protocol, append(existing, port))
	}
	stats.Services = len(db.Services)
	return db, stats
}

func (db *Database) addEntry(port int, protocol string, entry ServiceEntry) {
	key := portKey(port)
	protocols, ok := db.Ports.Get(key)
	if !ok {
		protocols = orderedmap.New[string, []ServiceEntry]()
		db.Ports.Set(key, protocols)
	}
	existing, _ := protocols.Get(protocol)
	protocols.Set(protocol, append(existing, entry))
}

func splitUpstreamKey(key string) (int, string, bool) {
	rawPort, protocol, found := strings.Cut(key, "/")
	if !found || protocol == "" {
		return 0, "", false
	}
	port, err := strconv.Atoi(rawPort)
	if err != nil || ValidatePort(port) != nil {
		return 0, "", false
	}
	return port, protocol, true
}
