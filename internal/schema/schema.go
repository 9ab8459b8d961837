// Package schema holds the static catalog of exam paper templates.
package schema

import "fmt"

// Reserved section ids. These carry metadata blocks (custom header text,
// custom general instructions) and are excluded from scored rendering.
const (
	SectionHeader              = "HEADER"
	SectionGeneralInstructions = "GEN_INST"
)

// IsReserved reports whether a section id is one of the reserved
// non-scored metadata sections.
func IsReserved(id string) bool {
	return id == SectionHeader || id == SectionGeneralInstructions
}

// SectionDef is one named, ordered slot within a template.
type SectionDef struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Marks        int      `json:"marks"`
	Instructions []string `json:"instructions"`
}

// TemplateSchema describes an exam's structural sections, default
// instructions and marks weights. Immutable once loaded.
type TemplateSchema struct {
	Key                  string       `json:"key"`
	Name                 string       `json:"name"`
	DefaultSubjectTitle  string       `json:"default_subject_title"`
	StandardInstructions []string     `json:"standard_instructions"`
	Sections             []SectionDef `json:"sections"`
}

// Section returns the section with the given id, if present.
func (s *TemplateSchema) Section(id string) (SectionDef, bool) {
	for _, sec := range s.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return SectionDef{}, false
}

// HasSection reports whether the schema declares the given section id.
func (s *TemplateSchema) HasSection(id string) bool {
	_, ok := s.Section(id)
	return ok
}

// FirstScoredSection returns the first non-reserved section. Every schema
// in the catalog has at least one.
func (s *TemplateSchema) FirstScoredSection() SectionDef {
	for _, sec := range s.Sections {
		if !IsReserved(sec.ID) {
			return sec
		}
	}
	return SectionDef{}
}

// Validate checks schema invariants: non-empty key, unique section ids,
// non-negative marks.
func (s *TemplateSchema) Validate() error {
	if s.Key == "" {
		return fmt.Errorf("schema has empty key")
	}
	seen := make(map[string]bool, len(s.Sections))
	for _, sec := range s.Sections {
		if sec.ID == "" {
			return fmt.Errorf("schema %s: section with empty id", s.Key)
		}
		if seen[sec.ID] {
			return fmt.Errorf("schema %s: duplicate section id %s", s.Key, sec.ID)
		}
		seen[sec.ID] = true
		if sec.Marks < 0 {
			return fmt.Errorf("schema %s: section %s has negative marks", s.Key, sec.ID)
		}
	}
	return nil
}

// Registry is the read-only template catalog.
type Registry struct {
	keys    []string
	schemas map[string]*TemplateSchema
}

// NewRegistry builds the registry from the built-in catalog. It panics on
// invalid catalog data since that is a programming error, not runtime input.
func NewRegistry() *Registry {
	r := &Registry{schemas: make(map[string]*TemplateSchema, len(catalog))}
	for i := range catalog {
		s := &catalog[i]
		if err := s.Validate(); err != nil {
			panic(err)
		}
		r.keys = append(r.keys, s.Key)
		r.schemas[s.Key] = s
	}
	return r
}

// Get returns the schema for a key, if present.
func (r *Registry) Get(key string) (*TemplateSchema, bool) {
	s, ok := r.schemas[key]
	return s, ok
}

// Keys returns schema keys in catalog order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}
