// Where: internal/domain/portdb/list.go
// What: Service listing with exact or regular-expression filters.
// Why: Answer "which ports does service X use" from the summaries.
package portdb

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Filter selects service summaries. An empty Pattern selects everything.
// Without Regex, Pattern must equal the name or the description exactly.
// With Regex, Pattern is an RE2 expression matched against either field.
type Filter struct {
	Pattern string
	Regex   bool
}

// List returns the summaries selected by filter in document order.
func (db *Database) List(filter Filter) ([]ServiceSummary, error) {
	match, err := filter.matcher()
	if err != nil {
		return nil, err
	}
	selected := []ServiceSummary{}
	if db == nil {
		return selected, nil
	}
	for _, svc := range db.Services {
		if match(svc) {
			selected = append(selected, svc)
		}
	}
	return selected, nil
}

// Validate reports ErrInvalidPattern for a regex filter that does not compile.
func (f Filter) Validate() error {
	_, err := f.matcher()
	return err
}

func (f Filter) matcher() (func(ServiceSummary) bool, error) {
	if f.Pattern == "" {
		return func(ServiceSummary) bool { return true }, nil
	}
	if !f.Regex {
		return func(svc ServiceSummary) bool {
			return svc.Name == f.Pattern || svc.Description == f.Pattern
		}, nil
	}
	re, err := regexp.Compile(f.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return func(svc ServiceSummary) bool {
		return re.MatchString(svc.Name) || re.MatchString(svc.Description)
	}, nil
}

// PortLabels returns "protocol/port" labels in document order.
func (s ServiceSummary) PortLabels() []string {
	labels := []string{}
	if s.Ports == nil {
		return labels
	}
	for pair := s.Ports.Oldest(); pair != nil; pair = pair.Next() {
		for _, port := range pair.Value {
			labels = append(labels, pair.Key+"/"+strconv.Itoa(port))
		}
	}
	return labels
}

// String renders the summary as `http "World Wide Web HTTP" tcp/80 udp/80`.
func (s ServiceSummary) String() string {
	line := fmt.Sprintf("%s \"%s\"", s.Name, s.Description)
	if labels := s.PortLabels(); len(labels) > 0 {
		line += " " + strings.Join(labels, " ")
	}
	return line
}
