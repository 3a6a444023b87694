package browser

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed browsers.yaml
var builtinTable []byte

// Candidate is one row of the browser table.
type Candidate struct {
	Name        string   `yaml:"name"`
	Executable  string   `yaml:"executable"` // basename for the PATH fallback
	Paths       []string `yaml:"paths"`      // tried in order
	Description string   `yaml:"description"`
	Icon        string   `yaml:"icon"`
}

// Table maps runtime.GOOS values to their known browsers.
type Table map[string][]Candidate

// ForOS returns the candidates of goos, nil when the OS is unknown.
func (t Table) ForOS(goos string) []Candidate {
	return t[goos]
}

// ParseTable decodes a yaml browser table.
func ParseTable(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse browser table: %w", err)
	}
	if t == nil {
		t = Table{}
	}
	return t, nil
}

// LoadTable returns the built-in table with the rows of extraPath appended
// per OS. An empty extraPath yields the built-in table alone.
func LoadTable(extraPath string) (Table, error) {
	table, err := ParseTable(builtinTable)
	if err != nil {
		return nil, err
	}
	if extraPath == "" {
		return table, nil
	}

	data, err := os.ReadFile(extraPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read browser table: %w", err)
	}
	extra, err := ParseTable(data)
	if err != nil {
		return nil, err
	}
	for goos, rows := range extra {
		table[goos] = append(table[goos], rows...)
	}
	return table, nil
}
