// Package catalog maps part-type identifiers to geometry generators.
//
// The archetype table (canonical names, legacy aliases, default dimensions)
// lives in an embedded YAML file; generator functions are bound to it at load
// time through a closed registration table, so a catalog entry without a
// generator is a startup error, not a silent runtime fallback. Unknown
// identifiers still resolve to a generic cube so a typo never leaves the
// viewer without a preview.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"partforge/internal/mesh"
)

//go:embed catalog.yaml
var catalogYAML []byte

// DefaultType is the canonical archetype used for unknown part types.
const DefaultType = "box"

// Result is the outcome of a generator run. Mesh is always renderable;
// Degraded reports that some failure was absorbed and Reasons says what was
// downgraded.
type Result struct {
	Mesh     *mesh.Mesh
	Degraded bool
	Reasons  []string
}

func (r *Result) degrade(format string, args ...any) {
	r.Degraded = true
	r.Reasons = append(r.Reasons, fmt.Sprintf(format, args...))
}

// Generator builds a part preview from a parameter record. Generators never
// fail: invalid input degrades to the nearest valid variant.
type Generator func(p ShapeParameters) Result

type archetypeDef struct {
	Name     string          `yaml:"name"`
	Aliases  []string        `yaml:"aliases"`
	Defaults ShapeParameters `yaml:"defaults"`
}

type catalogFile struct {
	Archetypes []archetypeDef `yaml:"archetypes"`
}

// Catalog is the loaded archetype table.
type Catalog struct {
	generators map[string]Generator
	aliases    map[string]string
	names      []string
}

// Load parses the embedded archetype table and binds each archetype to its
// generator. An archetype without a registered builder, or a duplicate name
// or alias, is an error.
func Load() (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(catalogYAML, &file); err != nil {
		return nil, fmt.Errorf("catalog: parse archetype table: %w", err)
	}
	c := &Catalog{
		generators: make(map[string]Generator, len(file.Archetypes)),
		aliases:    make(map[string]string),
	}
	for _, def := range file.Archetypes {
		name := normalize(def.Name)
		builder, ok := builders[name]
		if !ok {
			return nil, fmt.Errorf("catalog: archetype %q has no registered generator", name)
		}
		if _, dup := c.generators[name]; dup {
			return nil, fmt.Errorf("catalog: duplicate archetype %q", name)
		}
		defaults := def.Defaults
		c.generators[name] = func(p ShapeParameters) Result {
			return builder(p.withDefaults(defaults))
		}
		c.names = append(c.names, name)
		for _, a := range def.Aliases {
			alias := normalize(a)
			if _, dup := c.aliases[alias]; dup {
				return nil, fmt.Errorf("catalog: duplicate alias %q", alias)
			}
			c.aliases[alias] = name
		}
	}
	if _, ok := c.generators[DefaultType]; !ok {
		return nil, fmt.Errorf("catalog: default archetype %q missing", DefaultType)
	}
	sort.Strings(c.names)
	return c, nil
}

// MustLoad is Load for wiring code where the embedded catalog is known good.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Canonical resolves a part-type identifier (canonical name or legacy alias)
// to its canonical archetype name. ok is false for unknown identifiers, which
// map to DefaultType.
func (c *Catalog) Canonical(partType string) (string, bool) {
	id := normalize(partType)
	if _, ok := c.generators[id]; ok {
		return id, true
	}
	if name, ok := c.aliases[id]; ok {
		return name, true
	}
	return DefaultType, false
}

// Resolve returns the generator for a part-type identifier along with the
// canonical name it resolved to. Unknown identifiers resolve to the default
// cube generator with ok false.
func (c *Catalog) Resolve(partType string) (gen Generator, canonical string, ok bool) {
	canonical, ok = c.Canonical(partType)
	return c.generators[canonical], canonical, ok
}

// Archetypes returns the sorted canonical archetype names.
func (c *Catalog) Archetypes() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
