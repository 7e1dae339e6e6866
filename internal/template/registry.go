package template

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/chemtrack/sds-extractor/constants"
	"github.com/chemtrack/sds-extractor/internal/common"
	"github.com/chemtrack/sds-extractor/internal/vocab"
)

// Registry holds the compiled, immutable templates for a batch. Load
// everything at batch start; a malformed template fails fast with a
// TemplateError before any document is processed.
type Registry struct {
	templates      map[string]*Template
	defaultVersion string
	vocab          *vocab.Vocabulary
	logger         *slog.Logger
}

// NewRegistry builds a registry pre-loaded with the builtin standard-GHS
// template, which is also the default when no version is requested.
func NewRegistry(v *vocab.Vocabulary, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if v == nil {
		v = vocab.Builtin()
	}
	r := &Registry{
		templates: make(map[string]*Template),
		vocab:     v,
		logger:    logger,
	}
	builtin := StandardGHS()
	if err := r.Register(builtin); err != nil {
		return nil, err
	}
	r.defaultVersion = builtin.VersionID()
	return r, nil
}

// Register compiles and adds a template. Re-registering an existing version
// id is an error: versions are immutable.
func (r *Registry) Register(t *Template) error {
	if err := r.compile(t); err != nil {
		return err
	}
	id := t.VersionID()
	if _, exists := r.templates[id]; exists {
		return common.TemplateErrorf("template version %q already registered", id)
	}
	r.templates[id] = t
	r.logger.Debug("registry.template.registered", "version", id, "fields", len(t.Fields))
	return nil
}

// LoadFile reads, validates, and registers one JSON template definition.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return common.TemplateError(fmt.Sprintf("read template %s", path), err)
	}
	if err := validateJSONAgainstSchema(templateJSONSchema(), data); err != nil {
		return common.TemplateError(fmt.Sprintf("template %s", path), err)
	}
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return common.TemplateError(fmt.Sprintf("decode template %s", path), err)
	}
	return r.Register(&t)
}

// LoadDir registers every *.json template under dir, in name order so a
// directory always loads deterministically.
func (r *Registry) LoadDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return common.TemplateError("scan template dir", err)
	}
	sort.Strings(matches)
	for _, path := range matches {
		if err := r.LoadFile(path); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the template for a version id. An empty version selects the
// default (builtin standard-GHS).
func (r *Registry) Get(version string) (*Template, error) {
	if version == "" {
		version = r.defaultVersion
	}
	t, ok := r.templates[version]
	if !ok {
		return nil, common.TemplateErrorf("unknown template version %q", version)
	}
	return t, nil
}

// DefaultVersion returns the version id used when none is requested.
func (r *Registry) DefaultVersion() string {
	return r.defaultVersion
}

// Versions lists registered version ids in sorted order.
func (r *Registry) Versions() []string {
	out := make([]string, 0, len(r.templates))
	for id := range r.templates {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// compile resolves sections, compiles patterns, and rejects semantic errors:
// duplicate field names, duplicate rule ids, unknown sections, unknown rule
// types, unknown vocabularies or lookup tables, invalid regexes.
func (r *Registry) compile(t *Template) error {
	if t.Name == "" || t.Version < 1 {
		return common.TemplateErrorf("template needs a name and a version >= 1")
	}
	seenFields := make(map[string]struct{}, len(t.Fields))
	seenRules := make(map[string]struct{})
	for i := range t.Fields {
		f := &t.Fields[i]
		if _, dup := seenFields[f.Name]; dup {
			return common.TemplateErrorf("template %s: duplicate field %q", t.VersionID(), f.Name)
		}
		seenFields[f.Name] = struct{}{}

		sec, ok := constants.CanonicalizeSection(f.Section)
		if !ok {
			return common.TemplateErrorf("template %s: field %q: unknown section %q", t.VersionID(), f.Name, f.Section)
		}
		f.section = sec

		if f.Vocabulary != "" {
			if _, ok := knownVocabularies[f.Vocabulary]; !ok {
				return common.TemplateErrorf("template %s: field %q: unknown vocabulary %q", t.VersionID(), f.Name, f.Vocabulary)
			}
		}
		if len(f.Rules) == 0 {
			return common.TemplateErrorf("template %s: field %q has no rules", t.VersionID(), f.Name)
		}
		for j := range f.Rules {
			rule := &f.Rules[j]
			if rule.ID == "" {
				return common.TemplateErrorf("template %s: field %q: rule %d has no id", t.VersionID(), f.Name, j)
			}
			if _, dup := seenRules[rule.ID]; dup {
				return common.TemplateErrorf("template %s: duplicate rule id %q", t.VersionID(), rule.ID)
			}
			seenRules[rule.ID] = struct{}{}

			switch rule.Type {
			case constants.RulePattern:
				if rule.Pattern == "" {
					return common.TemplateErrorf("template %s: rule %q: pattern rule without pattern", t.VersionID(), rule.ID)
				}
				re, err := regexp.Compile("(?i)" + rule.Pattern)
				if err != nil {
					return common.TemplateError(fmt.Sprintf("template %s: rule %q: bad pattern", t.VersionID(), rule.ID), err)
				}
				rule.re = re
			case constants.RuleProximity:
				if rule.Keyword == "" {
					return common.TemplateErrorf("template %s: rule %q: proximity rule without keyword", t.VersionID(), rule.ID)
				}
			case constants.RuleTable:
				if rule.Table == "" {
					return common.TemplateErrorf("template %s: rule %q: table rule without table", t.VersionID(), rule.ID)
				}
				if !r.vocab.HasTable(rule.Table) {
					return common.TemplateErrorf("template %s: rule %q: unknown table %q", t.VersionID(), rule.ID, rule.Table)
				}
			default:
				return common.TemplateErrorf("template %s: rule %q: unknown rule type %q", t.VersionID(), rule.ID, rule.Type)
			}
		}
	}
	return nil
}
