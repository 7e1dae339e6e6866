// Package vocab holds the read-only reference vocabularies shared by all
// extraction runs: the CAS check-digit rule, GHS hazard and precautionary
// statement codes, controlled lookup tables, and date-locale hints. A
// Vocabulary is loaded once per process and never mutated afterwards, so
// workers share it without locking.
package vocab

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chemtrack/sds-extractor/internal/common"
)

// Vocabulary is an immutable snapshot of all reference tables.
type Vocabulary struct {
	// Hazard maps H-codes (H2xx physical, H3xx health, H4xx environmental)
	// to their canonical statements.
	Hazard map[string]string
	// Precautionary maps P-codes (P1xx general through P5xx disposal) to
	// their canonical statements.
	Precautionary map[string]string
	// Tables holds the controlled vocabularies available to table-lookup
	// rules, keyed by table name (e.g. "suppliers").
	Tables map[string][]string
	// DayFirstLocales marks locales whose numeric dates read day/month/year.
	DayFirstLocales map[string]bool
}

// Builtin returns the compiled-in vocabulary snapshot.
func Builtin() *Vocabulary {
	return &Vocabulary{
		Hazard:          builtinHazard,
		Precautionary:   builtinPrecautionary,
		Tables:          builtinTables,
		DayFirstLocales: builtinDayFirst,
	}
}

// overrideFile is the YAML shape of a vocabulary override file. Entries are
// merged over the builtin snapshot; existing codes are replaced, new codes
// added.
type overrideFile struct {
	Hazard          map[string]string   `yaml:"hazard"`
	Precautionary   map[string]string   `yaml:"precautionary"`
	Tables          map[string][]string `yaml:"tables"`
	DayFirstLocales []string            `yaml:"day_first_locales"`
}

// Load returns the builtin vocabulary merged with an optional YAML override
// file. An empty path returns the builtin snapshot unchanged.
func Load(path string) (*Vocabulary, error) {
	base := Builtin()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(err, "read vocabulary")
	}
	var ov overrideFile
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, common.WrapError(err, "parse vocabulary")
	}

	merged := &Vocabulary{
		Hazard:          cloneMap(base.Hazard),
		Precautionary:   cloneMap(base.Precautionary),
		Tables:          make(map[string][]string, len(base.Tables)),
		DayFirstLocales: cloneBoolMap(base.DayFirstLocales),
	}
	for name, entries := range base.Tables {
		merged.Tables[name] = append([]string(nil), entries...)
	}
	for code, text := range ov.Hazard {
		merged.Hazard[strings.ToUpper(code)] = text
	}
	for code, text := range ov.Precautionary {
		merged.Precautionary[strings.ToUpper(code)] = text
	}
	for name, entries := range ov.Tables {
		merged.Tables[name] = entries
	}
	for _, loc := range ov.DayFirstLocales {
		merged.DayFirstLocales[strings.ToLower(loc)] = true
	}
	return merged, nil
}

// HasTable reports whether a named lookup table exists.
func (v *Vocabulary) HasTable(name string) bool {
	_, ok := v.Tables[name]
	return ok
}

// Table returns the entries of a named lookup table sorted longest-first,
// so multi-word entries win over their prefixes during matching.
func (v *Vocabulary) Table(name string) ([]string, error) {
	entries, ok := v.Tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown vocabulary table %q", name)
	}
	sorted := append([]string(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	return sorted, nil
}

// Statement resolves an H- or P-code to its canonical statement text.
func (v *Vocabulary) Statement(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if s, ok := v.Hazard[code]; ok {
		return s, true
	}
	s, ok := v.Precautionary[code]
	return s, ok
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
