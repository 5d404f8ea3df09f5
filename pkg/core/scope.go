package core

import "fmt"

// ScopeID indexes a scope in a ScopeTree.
type ScopeID int

// NoScope is the parent of the global scope.
const NoScope ScopeID = -1

// ScopeKind classifies a lexical scope.
type ScopeKind string

// Scope kinds.
const (
	ScopeGlobal   ScopeKind = "global"
	ScopeFunction ScopeKind = "function"
	ScopeBlock    ScopeKind = "block"
)

// Scope is one record of the scope arena.
type Scope struct {
	ID     ScopeID
	Kind   ScopeKind
	Parent ScopeID
	Node   *Node // node that opened the scope
}

// IsVarScope reports whether var declarations bind here.
func (s Scope) IsVarScope() bool {
	return s.Kind == ScopeGlobal || s.Kind == ScopeFunction
}

// ScopeTree is an arena of scopes linked by parent indices.
// Index 0 is always the global scope once the parser has run.
type ScopeTree struct {
	scopes []Scope
}

// NewScopeTree creates an empty arena.
func NewScopeTree() *ScopeTree {
	return &ScopeTree{}
}

// Add appends a scope and returns its id.
func (t *ScopeTree) Add(kind ScopeKind, parent ScopeID, node *Node) ScopeID {
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, Scope{ID: id, Kind: kind, Parent: parent, Node: node})
	return id
}

// Len returns the number of scopes.
func (t *ScopeTree) Len() int {
	return len(t.scopes)
}

// Get returns the scope with the given id.
func (t *ScopeTree) Get(id ScopeID) (Scope, error) {
	if t == nil || id < 0 || int(id) >= len(t.scopes) {
		return Scope{}, fmt.Errorf("%w: id %d", ErrScopeNotFound, id)
	}
	return t.scopes[id], nil
}

// Parent returns the enclosing scope of id.
func (t *ScopeTree) Parent(id ScopeID) (Scope, error) {
	s, err := t.Get(id)
	if err != nil {
		return Scope{}, err
	}
	if s.Parent == NoScope {
		return Scope{}, fmt.Errorf("%w: %s scope %d has no parent", ErrScopeNotFound, s.Kind, id)
	}
	return t.Get(s.Parent)
}

// VarScope returns the nearest function-or-global scope enclosing id,
// which is where var declarations bind.
func (t *ScopeTree) VarScope(id ScopeID) (Scope, error) {
	for cur := id; ; {
		s, err := t.Get(cur)
		if err != nil {
			return Scope{}, err
		}
		if s.IsVarScope() {
			return s, nil
		}
		if s.Parent == NoScope {
			return Scope{}, fmt.Errorf("%w: no function or global scope above %d", ErrScopeNotFound, id)
		}
		cur = s.Parent
	}
}

// Chain returns the scopes from id outward to the global scope.
func (t *ScopeTree) Chain(id ScopeID) ([]Scope, error) {
	var out []Scope
	for cur := id; cur != NoScope; {
		s, err := t.Get(cur)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		cur = s.Parent
	}
	return out, nil
}
