/*
   Copyright 2026 The Axisgate Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"

	"axisgate.dev/faultline/fieldpath"
)

// Registry is the named schema lookup table. A zero Registry is not usable;
// construct one with NewRegistry, which preloads the built-in schemas.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry returns a registry preloaded with the built-in schemas
// ("chat_completion" and "session").
func NewRegistry() *Registry {
	r := &Registry{schemas: make(map[string]*Schema)}
	r.Register("chat_completion", ChatCompletionSchema())
	r.Register("session", SessionSchema())
	return r
}

// Register stores s under name, replacing any existing schema of that name.
func (r *Registry) Register(name string, s *Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.Name = name
	r.schemas[name] = s
}

// Lookup returns the schema registered under name.
func (r *Registry) Lookup(name string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[name]
	return s, ok
}

// Names lists the registered schema names. Order is unspecified.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.schemas))
	for n := range r.schemas {
		names = append(names, n)
	}
	return names
}

// yamlSchema is the on-disk schema document shape.
//
//	name: chat_completion
//	description: Chat completion request
//	rules:
//	  - field: model
//	    path: model
//	    required: true
//	    type: string
//	  - field: title
//	    path: title
//	    type: string
//	    max_length: 200
//	    pattern: "^[A-Za-z].*$"
//	  - field: role
//	    path: role
//	    enum: [user, assistant, system]
//
// Custom predicates cannot be expressed in YAML; register those in code.
type yamlSchema struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Rules       []yamlRule       `yaml:"rules"`
	Examples    []map[string]any `yaml:"examples"`
}

type yamlRule struct {
	Field       string `yaml:"field"`
	Path        string `yaml:"path"`
	Required    bool   `yaml:"required"`
	Type        string `yaml:"type"`
	MinLength   *int   `yaml:"min_length"`
	MaxLength   *int   `yaml:"max_length"`
	Pattern     string `yaml:"pattern"`
	Enum        []any  `yaml:"enum"`
	Description string `yaml:"description"`
}

// LoadSchemaYAML parses one YAML schema document and returns its name and
// the compiled schema. Paths and patterns are validated at load time so a
// bad document fails here, not during request handling.
func LoadSchemaYAML(doc []byte) (string, *Schema, error) {
	var y yamlSchema
	if err := yaml.Unmarshal(doc, &y); err != nil {
		return "", nil, fmt.Errorf("parsing schema document: %w", err)
	}
	if y.Name == "" {
		return "", nil, fmt.Errorf("schema document has no name")
	}
	if len(y.Rules) == 0 {
		return "", nil, fmt.Errorf("schema %q has no rules", y.Name)
	}

	s := &Schema{
		Description: y.Description,
		Examples:    y.Examples,
		Rules:       make([]Rule, 0, len(y.Rules)),
	}
	for i, yr := range y.Rules {
		if yr.Path == "" {
			return "", nil, fmt.Errorf("schema %q rule %d: missing path", y.Name, i)
		}
		p, err := fieldpath.Parse(yr.Path)
		if err != nil {
			return "", nil, fmt.Errorf("schema %q rule %d: %w", y.Name, i, err)
		}
		rule := Rule{
			Field:       yr.Field,
			Path:        p,
			Required:    yr.Required,
			Type:        yr.Type,
			MinLength:   yr.MinLength,
			MaxLength:   yr.MaxLength,
			Enum:        yr.Enum,
			Description: yr.Description,
		}
		if rule.Field == "" {
			rule.Field = p.String()
			// prefer the last named segment over the raw path
			for segs := p.Segments(); len(segs) > 0; segs = segs[:len(segs)-1] {
				if last := segs[len(segs)-1]; !last.IsIndex {
					rule.Field = last.Key
					break
				}
			}
		}
		if yr.Pattern != "" {
			re, err := regexp.Compile(yr.Pattern)
			if err != nil {
				return "", nil, fmt.Errorf("schema %q rule %d: bad pattern: %w", y.Name, i, err)
			}
			rule.Pattern = re
		}
		s.Rules = append(s.Rules, rule)
	}
	return y.Name, s, nil
}

// LoadYAML parses doc and registers the schema it describes.
func (r *Registry) LoadYAML(doc []byte) error {
	name, s, err := LoadSchemaYAML(doc)
	if err != nil {
		return err
	}
	r.Register(name, s)
	return nil
}

// LoadFile reads and registers one YAML schema document from path.
func (r *Registry) LoadFile(path string) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading schema file: %w", err)
	}
	if err := r.LoadYAML(doc); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// LoadDir registers every *.yaml and *.yml document in dir. Loading stops at
// the first bad document so a typo cannot silently drop half the schemas.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading schema directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
