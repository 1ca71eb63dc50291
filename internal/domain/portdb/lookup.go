// Where: internal/domain/portdb/lookup.go
// What: Single-port lookup.
// Why: Answer "what runs on port N" from the snapshot.
package portdb

import "fmt"

// Match is one (protocol, service) pairing registered for a port.
type Match struct {
	Port        int    `json:"port"`
	Protocol    string `json:"protocol"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// String renders the match as `80/tcp http "World Wide Web HTTP"`.
func (m Match) String() string {
	return fmt.Sprintf("%d/%s %s \"%s\"", m.Port, m.Protocol, m.Name, m.Description)
}

// Identification is the result of looking up one port.
type Identification struct {
	Port    int     `json:"port"`
	Matches []Match `json:"matches"`
	// Services lists service names once each, in first-seen order.
	Services []string `json:"services"`
}

// Identify returns every service registered for port, in document order.
// An unknown port yields an empty result, not an error.
func (db *Database) Identify(port int) (Identification, error) {
	if err := ValidatePort(port); err != nil {
		return Identification{}, err
	}

	result := Identification{
		Port:     port,
		Matches:  []Match{},
		Services: []string{},
	}
	if db == nil || db.Ports == nil {
		return result, nil
	}
	protocols, ok := db.Ports.Get(portKey(port))
	if !ok || protocols == nil {
		return result, nil
	}

	seen := map[string]struct{}{}
	for pair := protocols.Oldest(); pair != nil; pair = pair.Next() {
		for _, svc := range pair.Value {
			result.Matches = append(result.Matches, Match{
				Port:        port,
				Protocol:    pair.Key,
				Name:        svc.Name,
				Description: svc.Description,
			})
			if _, dup := seen[svc.Name]; dup {
				continue
			}
			seen[svc.Name] = struct{}{}
			result.Services = append(result.Services, svc.Name)
		}
	}
	return result, nil
}
