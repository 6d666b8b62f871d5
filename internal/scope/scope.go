package scope

import "chomsky/internal/token"

type SymbolKind string

const (
	TypeSymbol SymbolKind = "TYPE"
	DeclSymbol SymbolKind = "DECL"
)

// Symbol is what a Scope binds a name to: a Type, or a declaration node.
type Symbol interface {
	SymbolKind() SymbolKind
}

type TypeKind int

const (
	Primitive TypeKind = iota
	// Unresolved marks a type named before anything defined it.
	Unresolved
)

type Type struct {
	Kind      TypeKind
	Qualifier *Qualifier
}

func (*Type) SymbolKind() SymbolKind { return TypeSymbol }
func (t *Type) String() string       { return t.Qualifier.Full }

// Scope is one lexical level. Lookups that miss fall back to Outer; Define
// only ever touches this level.
type Scope struct {
	Outer   *Scope
	names   *Resolver
	symbols map[*Qualifier]Symbol
}

func New() *Scope {
	return &Scope{names: NewResolver(), symbols: map[*Qualifier]Symbol{}}
}

func NewEnclosed(outer *Scope) *Scope {
	s := New()
	s.Outer = outer
	return s
}

// NewGlobal returns a root scope holding one Type per primitive type name.
func NewGlobal() *Scope {
	s := New()
	for _, name := range token.PrimitiveNames {
		q := NewQualifier(name)
		s.names.Set(name, q)
		s.symbols[q] = &Type{Kind: Primitive, Qualifier: q}
	}
	return s
}

// Define binds name in this scope, reusing the canonical qualifier if the
// name was seen here before.
func (s *Scope) Define(name string, sym Symbol) *Qualifier {
	q, ok := s.names.Get(name)
	if !ok {
		q = NewQualifier(name)
		s.names.Set(name, q)
	}
	s.symbols[q] = sym
	return q
}

func (s *Scope) Resolve(name string) (Symbol, bool) {
	if sym, ok := s.ResolveLocal(name); ok {
		return sym, true
	}
	if s.Outer == nil {
		return nil, false
	}
	return s.Outer.Resolve(name)
}

func (s *Scope) ResolveLocal(name string) (Symbol, bool) {
	q, ok := s.names.Get(name)
	if !ok {
		return nil, false
	}
	sym, ok := s.symbols[q]
	return sym, ok
}

// ResolveType is Resolve restricted to type symbols.
func (s *Scope) ResolveType(name string) (*Type, bool) {
	sym, ok := s.Resolve(name)
	if !ok {
		return nil, false
	}
	t, ok := sym.(*Type)
	return t, ok
}

// Qualifier returns the canonical qualifier for name along the chain.
func (s *Scope) Qualifier(name string) (*Qualifier, bool) {
	for sc := s; sc != nil; sc = sc.Outer {
		if q, ok := sc.names.Get(name); ok {
			return q, true
		}
	}
	return nil, false
}

// Names lists the spellings bound at this level only.
func (s *Scope) Names() []string { return s.names.Names() }

func (s *Scope) Depth() int {
	d := 0
	for sc := s.Outer; sc != nil; sc = sc.Outer {
		d++
	}
	return d
}
