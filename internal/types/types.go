package types

import (
	"fmt"
	"strings"
)

// Ecosystem selects which external tool and parser produce a Record.
type Ecosystem string

const (
	Python Ecosystem = "python"
	Node   Ecosystem = "node"
	Ruby   Ecosystem = "ruby"
	Java   Ecosystem = "java"
)

// Ecosystems lists every supported tag in display order.
func Ecosystems() []Ecosystem {
	return []Ecosystem{Python, Node, Ruby, Java}
}

// ParseEcosystem parses a tag case-insensitively. Unknown tags return an error.
func ParseEcosystem(s string) (Ecosystem, error) {
	e := Ecosystem(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Ecosystems() {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("unsupported ecosystem: %q", s)
}

// Title returns the display name used in diagnostics ("Python", "Node.js", ...).
func (e Ecosystem) Title() string {
	switch e {
	case Python:
		return "Python"
	case Node:
		return "Node.js"
	case Ruby:
		return "Ruby"
	case Java:
		return "Java"
	default:
		return string(e)
	}
}

// Dependency is one package reported by a license tool.
type Dependency struct {
	Name      string    `json:"name"`
	Version   string    `json:"version,omitempty"`
	License   string    `json:"license"`
	Ecosystem Ecosystem `json:"ecosystem,omitempty"`
	// Key is the entry's identity in the tool output when it differs from
	// Name, such as license-checker's "name@version".
	Key string `json:"-"`
}

// RecordKey is the key a Record stores d under: Key when set, else Name.
func (d Dependency) RecordKey() string {
	if d.Key != "" {
		return d.Key
	}
	return d.Name
}

// Record maps dependency keys to dependencies and remembers insertion order.
// Setting an existing key replaces the value in place.
type Record struct {
	order []string
	deps  map[string]Dependency
}

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return &Record{deps: map[string]Dependency{}}
}

// Set adds or replaces the dependency keyed by d.RecordKey().
func (r *Record) Set(d Dependency) {
	if r.deps == nil {
		r.deps = map[string]Dependency{}
	}
	k := d.RecordKey()
	if _, ok := r.deps[k]; !ok {
		r.order = append(r.order, k)
	}
	r.deps[k] = d
}

// Get returns the dependency stored under key.
func (r *Record) Get(key string) (Dependency, bool) {
	if r == nil {
		return Dependency{}, false
	}
	d, ok := r.deps[key]
	return d, ok
}

// Delete removes key from the record.
func (r *Record) Delete(key string) {
	if r == nil {
		return
	}
	if _, ok := r.deps[key]; !ok {
		return
	}
	delete(r.deps, key)
	for i, n := range r.order {
		if n == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Len reports the number of entries. A nil Record is empty.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Dependencies returns entries in insertion order.
func (r *Record) Dependencies() []Dependency {
	if r == nil {
		return nil
	}
	out := make([]Dependency, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.deps[n])
	}
	return out
}

// IncompatibleReason is attached to every finding produced by the filter.
const IncompatibleReason = "Incompatible with many commercial uses"

// Finding is a dependency whose license matched a disallowed marker.
type Finding struct {
	Package   string    `json:"package"`
	License   string    `json:"license"`
	Reason    string    `json:"reason"`
	Ecosystem Ecosystem `json:"ecosystem,omitempty"`
}

// String renders the finding the way summaries and reports list it.
func (f Finding) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Package, f.License, f.Reason)
}
