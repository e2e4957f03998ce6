// Package fs provides file-based storage for extraction patterns and
// attempt artifacts.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/showreel"
)

// Ensure PatternStore implements showreel.PatternStore at compile time.
var _ showreel.PatternStore = (*PatternStore)(nil)

// PatternStore implements showreel.PatternStore backed by a single JSON
// knowledge-base file. Reads go through an atomic snapshot, so lookups never
// block and never observe a partially applied update. Writes serialize on a
// mutex, swap in a new snapshot and persist with a temp-file rename.
type PatternStore struct {
	path string

	mu       sync.Mutex
	snapshot atomic.Pointer[snapshot]
}

type snapshot struct {
	domains      map[string]*showreel.DomainConfig
	globals      map[string][]showreel.Pattern
	roleMappings map[string]string
	companyTypes map[string]string
}

// Wire format of the knowledge-base file.
type wireBase struct {
	Domains        map[string]wireDomain    `json:"domains"`
	GlobalPatterns map[string][]wirePattern `json:"global_patterns"`
	Mappings       wireMappings             `json:"mappings"`
}

// wireMappings resolve the opaque identifiers found in embedded credit
// payloads to human-readable role names and company types.
type wireMappings struct {
	RoleMappings map[string]string `json:"role_mappings"`
	CompanyTypes map[string]string `json:"company_types"`
}

type wireDomain struct {
	Patterns map[string]wirePattern `json:"patterns"`
	Methods  []string               `json:"extraction_methods"`
}

type wirePattern struct {
	Type      string `json:"type"`
	Pattern   string `json:"pattern"`
	Attribute string `json:"attribute,omitempty"`
	Template  string `json:"template,omitempty"`
}

// NewPatternStore loads the knowledge base at path. A missing file starts
// from the built-in defaults; an unreadable or invalid file is an error.
func NewPatternStore(path string) (*PatternStore, error) {
	s := &PatternStore{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultStore returns an in-memory store seeded with the built-in
// knowledge base. It never persists.
func DefaultStore() *PatternStore {
	s := &PatternStore{}
	snap, err := buildSnapshot(defaultKnowledgeBase())
	if err != nil {
		panic(err)
	}
	s.snapshot.Store(snap)
	return s
}

// Reload re-reads the knowledge-base file and swaps in the new snapshot.
// In-flight readers keep the old one.
func (s *PatternStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := defaultKnowledgeBase()
	if s.path != "" {
		data, err := os.ReadFile(s.path)
		if err != nil && !os.IsNotExist(err) {
			return showreel.Errorf(showreel.EINTERNAL, "read knowledge base: %v", err)
		}
		if err == nil {
			if err := json.Unmarshal(data, &base); err != nil {
				return showreel.Errorf(showreel.EINVALID, "parse knowledge base: %v", err)
			}
		}
	}

	snap, err := buildSnapshot(base)
	if err != nil {
		return err
	}
	s.snapshot.Store(snap)
	return nil
}

// Domain implements showreel.PatternStore.
func (s *PatternStore) Domain(domain string) (*showreel.DomainConfig, bool) {
	config, ok := s.snapshot.Load().domains[domain]
	return config, ok
}

// Global implements showreel.PatternStore.
func (s *PatternStore) Global(field string) []showreel.Pattern {
	return s.snapshot.Load().globals[field]
}

// RoleMappings returns the field-id to role-name table for embedded credit
// payloads. The returned map is part of an immutable snapshot; callers must
// not mutate it.
func (s *PatternStore) RoleMappings() map[string]string {
	return s.snapshot.Load().roleMappings
}

// CompanyTypes returns the category-id to company-type table for embedded
// credit payloads. Same sharing rules as RoleMappings.
func (s *PatternStore) CompanyTypes() map[string]string {
	return s.snapshot.Load().companyTypes
}

// Domains implements showreel.PatternStore.
func (s *PatternStore) Domains() []string {
	snap := s.snapshot.Load()
	domains := make([]string, 0, len(snap.domains))
	for domain := range snap.domains {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	return domains
}

// SaveDomain stores a domain's configuration and persists the knowledge
// base. Patterns are validated before anything is swapped in.
func (s *PatternStore) SaveDomain(domain string, config *showreel.DomainConfig) error {
	if domain == "" {
		return showreel.Errorf(showreel.EINVALID, "domain required")
	}
	for _, p := range config.Patterns {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot.Load().clone()
	next.domains[domain] = cloneConfig(config)
	return s.commit(next)
}

// Promote moves a strategy to the front of a domain's method order, so the
// strategy that last succeeded runs first on the next page from the domain.
func (s *PatternStore) Promote(domain, method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.snapshot.Load()
	config, ok := current.domains[domain]
	if !ok {
		config = &showreel.DomainConfig{Patterns: map[string]showreel.Pattern{}}
	}

	methods := []string{method}
	for _, m := range config.Methods {
		if m != method {
			methods = append(methods, m)
		}
	}

	next := current.clone()
	promoted := cloneConfig(config)
	promoted.Methods = methods
	next.domains[domain] = promoted
	return s.commit(next)
}

// commit swaps in the snapshot and persists it. Called with mu held.
func (s *PatternStore) commit(next *snapshot) error {
	if s.path != "" {
		data, err := json.MarshalIndent(next.wire(), "", "  ")
		if err != nil {
			return showreel.Errorf(showreel.EINTERNAL, "encode knowledge base: %v", err)
		}

		tmp := s.path + ".tmp"
		if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
			return showreel.Errorf(showreel.EINTERNAL, "create knowledge base dir: %v", err)
		}
		if err := os.WriteFile(tmp, data, 0644); err != nil {
			return showreel.Errorf(showreel.EINTERNAL, "write knowledge base: %v", err)
		}
		if err := os.Rename(tmp, s.path); err != nil {
			return showreel.Errorf(showreel.EINTERNAL, "replace knowledge base: %v", err)
		}
	}
	s.snapshot.Store(next)
	return nil
}

func buildSnapshot(base wireBase) (*snapshot, error) {
	snap := &snapshot{
		domains:      make(map[string]*showreel.DomainConfig, len(base.Domains)),
		globals:      make(map[string][]showreel.Pattern, len(base.GlobalPatterns)),
		roleMappings: cloneStringMap(base.Mappings.RoleMappings),
		companyTypes: cloneStringMap(base.Mappings.CompanyTypes),
	}

	for domain, wd := range base.Domains {
		config := &showreel.DomainConfig{
			Patterns: make(map[string]showreel.Pattern, len(wd.Patterns)),
			Methods:  append([]string(nil), wd.Methods...),
		}
		for name, wp := range wd.Patterns {
			p := wp.pattern(name)
			if err := p.Validate(); err != nil {
				return nil, err
			}
			config.Patterns[name] = p
		}
		snap.domains[domain] = config
	}

	for field, wps := range base.GlobalPatterns {
		patterns := make([]showreel.Pattern, 0, len(wps))
		for _, wp := range wps {
			p := wp.pattern(field)
			if err := p.Validate(); err != nil {
				return nil, err
			}
			patterns = append(patterns, p)
		}
		snap.globals[field] = patterns
	}
	return snap, nil
}

func (wp wirePattern) pattern(name string) showreel.Pattern {
	return showreel.Pattern{
		Name:       name,
		Kind:       showreel.PatternKind(wp.Type),
		Expression: wp.Pattern,
		Attribute:  wp.Attribute,
		Template:   wp.Template,
	}
}

func fromPattern(p showreel.Pattern) wirePattern {
	return wirePattern{
		Type:      string(p.Kind),
		Pattern:   p.Expression,
		Attribute: p.Attribute,
		Template:  p.Template,
	}
}

func cloneStringMap(m map[string]string) map[string]string {
	cloned := make(map[string]string, len(m))
	for k, v := range m {
		cloned[k] = v
	}
	return cloned
}

func (s *snapshot) clone() *snapshot {
	next := &snapshot{
		domains:      make(map[string]*showreel.DomainConfig, len(s.domains)),
		globals:      make(map[string][]showreel.Pattern, len(s.globals)),
		roleMappings: cloneStringMap(s.roleMappings),
		companyTypes: cloneStringMap(s.companyTypes),
	}
	for domain, config := range s.domains {
		next.domains[domain] = cloneConfig(config)
	}
	for field, patterns := range s.globals {
		next.globals[field] = append([]showreel.Pattern(nil), patterns...)
	}
	return next
}

func cloneConfig(config *showreel.DomainConfig) *showreel.DomainConfig {
	cloned := &showreel.DomainConfig{
		Patterns: make(map[string]showreel.Pattern, len(config.Patterns)),
		Methods:  append([]string(nil), config.Methods...),
	}
	for name, p := range config.Patterns {
		cloned.Patterns[name] = p
	}
	return cloned
}

func (s *snapshot) wire() wireBase {
	base := wireBase{
		Domains:        make(map[string]wireDomain, len(s.domains)),
		GlobalPatterns: make(map[string][]wirePattern, len(s.globals)),
		Mappings: wireMappings{
			RoleMappings: cloneStringMap(s.roleMappings),
			CompanyTypes: cloneStringMap(s.companyTypes),
		},
	}
	for domain, config := range s.domains {
		wd := wireDomain{
			Patterns: make(map[string]wirePattern, len(config.Patterns)),
			Methods:  append([]string(nil), config.Methods...),
		}
		for name, p := range config.Patterns {
			wd.Patterns[name] = fromPattern(p)
		}
		base.Domains[domain] = wd
	}
	for field, patterns := range s.globals {
		wps := make([]wirePattern, 0, len(patterns))
		for _, p := range patterns {
			wps = append(wps, fromPattern(p))
		}
		base.GlobalPatterns[field] = wps
	}
	return base
}

// defaultKnowledgeBase seeds the store with the one domain the system grew
// up on plus generic title and description fallbacks.
func defaultKnowledgeBase() wireBase {
	return wireBase{
		Domains: map[string]wireDomain{
			"lbbonline.com": {
				Patterns: map[string]wirePattern{
					"credits":        {Type: "regex", Pattern: `"lbb_credits":"((?:\\.|[^"\\])*)"`},
					"legacy_credits": {Type: "regex", Pattern: `"old_credits":"([^"]*)"`},
					"title":          {Type: "regex", Pattern: `"brand_and_name":"([^"]+)"`},
					"video_url": {
						Type:     "regex",
						Pattern:  `"notube_id":"([^"]+)"`,
						Template: "https://notube.lbbonline.com/v/%s",
					},
				},
				Methods: []string{
					showreel.StrategyDomainJSON,
					showreel.StrategyLegacyField,
					showreel.StrategyDOM,
					showreel.StrategyGeneric,
				},
			},
		},
		GlobalPatterns: map[string][]wirePattern{
			"title": {
				{Type: "meta", Pattern: `meta[property='og:title']`, Attribute: "content"},
				{Type: "regex", Pattern: `<title>(.*?)</title>`},
			},
			"description": {
				{Type: "meta", Pattern: `meta[property='og:description']`, Attribute: "content"},
				{Type: "meta", Pattern: `meta[name='description']`, Attribute: "content"},
			},
		},
		// Id tables are curated per deployment; the seed ships them empty.
		Mappings: wireMappings{
			RoleMappings: map[string]string{},
			CompanyTypes: map[string]string{},
		},
	}
}
