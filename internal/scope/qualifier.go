package scope

import (
	"sort"
	"strings"
)

// Qualifier is a symbol name. Full may be dotted ("pkg.Type"); Simple is its
// last segment.
type Qualifier struct {
	Full   string
	Simple string
}

func NewQualifier(full string) *Qualifier {
	return &Qualifier{Full: full, Simple: SimpleName(full)}
}

func SimpleName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func (q *Qualifier) String() string { return q.Full }

// SameAs compares by full name.
func (q *Qualifier) SameAs(other *Qualifier) bool {
	return other != nil && q.Full == other.Full
}

// Resolver maps both full and simple spellings to one canonical Qualifier.
type Resolver struct {
	simple map[string]*Qualifier
	full   map[string]*Qualifier
}

func NewResolver() *Resolver {
	return &Resolver{simple: map[string]*Qualifier{}, full: map[string]*Qualifier{}}
}

// Get resolves name by full spelling first, then by its simple name. A dotted
// name found through its simple name is remembered under the full spelling.
func (r *Resolver) Get(name string) (*Qualifier, bool) {
	if q, ok := r.full[name]; ok {
		return q, true
	}
	q, ok := r.simple[SimpleName(name)]
	if !ok {
		return nil, false
	}
	if SimpleName(name) != name {
		r.full[name] = q
	}
	return q, true
}

func (r *Resolver) Set(name string, q *Qualifier) {
	r.simple[SimpleName(name)] = q
	r.full[name] = q
}

// Names lists every registered spelling, sorted.
func (r *Resolver) Names() []string {
	seen := map[string]bool{}
	for n := range r.full {
		seen[n] = true
	}
	for n := range r.simple {
		seen[n] = true
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
