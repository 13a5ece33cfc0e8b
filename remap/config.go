package remap

import (
	"maps"
	"reflect"
	"slices"
)

// Rules holds the field-name substitutions of one (source, target) type pair.
// A source field mapped to "" is dropped; a source field without a rule keeps
// default same-name matching.
type Rules struct {
	src, dst reflect.Type
	names    map[string]string
}

// Map adds or overwrites the rule for source field src. An empty dst drops the field.
func (r *Rules) Map(src, dst string) *Rules {
	r.names[src] = dst
	return r
}

// Drop marks source field src as intentionally not mapped.
func (r *Rules) Drop(src string) *Rules {
	return r.Map(src, "")
}

// TargetName reports the rule for source field src. ok is false when there is
// no rule; ok with an empty name means the field is dropped.
func (r *Rules) TargetName(src string) (name string, ok bool) {
	if r == nil {
		return "", false
	}

	name, ok = r.names[src]
	return name, ok
}

// IsDropped reports whether src has an explicit drop rule.
func (r *Rules) IsDropped(src string) bool {
	name, ok := r.TargetName(src)
	return ok && name == ""
}

func (r *Rules) Len() int {
	if r == nil {
		return 0
	}

	return len(r.names)
}

// Each calls fn for every rule in source-name order.
func (r *Rules) Each(fn func(src, dst string)) {
	if r == nil {
		return
	}

	for _, src := range slices.Sorted(maps.Keys(r.names)) {
		fn(src, r.names[src])
	}
}

func (r *Rules) Source() reflect.Type { return r.src }
func (r *Rules) Target() reflect.Type { return r.dst }

type typePair struct {
	src, dst reflect.Type
}

// Config is a set of rule sets keyed by type pair. Pointer types are keyed by
// their element type. Config is not safe for concurrent mutation.
type Config struct {
	rules map[typePair]*Rules
}

func NewConfig() *Config {
	return &Config{rules: make(map[typePair]*Rules)}
}

// Configure returns the rule set for (src, dst), creating it on first use.
// Repeated calls for the same pair return the same *Rules.
func (c *Config) Configure(src, dst reflect.Type) *Rules {
	key := typePair{base(src), base(dst)}

	if r, ok := c.rules[key]; ok {
		return r
	}

	r := &Rules{src: key.src, dst: key.dst, names: make(map[string]string)}
	c.rules[key] = r

	return r
}

// For is the typed form of Config.Configure.
func For[S, D any](c *Config) *Rules {
	return c.Configure(reflect.TypeFor[S](), reflect.TypeFor[D]())
}

// Lookup returns the rule set registered for (src, dst), or nil.
func (c *Config) Lookup(src, dst reflect.Type) *Rules {
	if c == nil {
		return nil
	}

	return c.rules[typePair{base(src), base(dst)}]
}

// Len returns the number of configured type pairs.
func (c *Config) Len() int {
	if c == nil {
		return 0
	}

	return len(c.rules)
}

func base(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}
