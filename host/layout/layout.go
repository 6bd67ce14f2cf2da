package layout

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"holdboard/protocol"
)

// Layout maps a board's hold ids to LED positions and role names to colors
type Layout struct {
	Name      string            `yaml:"name" json:"name"`
	Positions map[string]int    `yaml:"positions" json:"positions"`
	Roles     map[string]string `yaml:"roles" json:"roles"`
}

// DefaultRoles are the role colors used when a layout defines none
func DefaultRoles() map[string]string {
	return map[string]string{
		"start":  "00FF00",
		"hand":   "00FFFF",
		"finish": "FF00FF",
		"foot":   "FFA500",
	}
}

// Load reads and validates a YAML layout file
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout %s: %w", path, err)
	}

	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates a YAML layout
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, err
	}

	applyDefaults(&l)

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// applyDefaults fills in missing layout values
func applyDefaults(l *Layout) {
	if l.Name == "" {
		l.Name = "board"
	}
	if l.Positions == nil {
		l.Positions = map[string]int{}
	}
	if len(l.Roles) == 0 {
		l.Roles = DefaultRoles()
	}
}

// Validate checks that every position fits the 16-bit wire field and every
// role color parses
func (l *Layout) Validate() error {
	for _, id := range sortedKeys(l.Positions) {
		pos := l.Positions[id]
		if pos < 0 || pos > 0xFFFF {
			return fmt.Errorf("%w: hold %q has position %d", ErrPositionOutOfRange, id, pos)
		}
	}
	for _, role := range sortedKeys(l.Roles) {
		if _, err := protocol.ParseColor(l.Roles[role]); err != nil {
			return fmt.Errorf("role %q: %w", role, err)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
