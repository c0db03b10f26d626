package ir

// TraitSpec represents a compiled trait declaration: a named set of
// associated constants that implementing types must provide.
type TraitSpec struct {
	Name   string       `json:"name"`
	Doc    string       `json:"doc,omitempty"`
	Consts []TraitConst `json:"consts"`
}

// TraitConst represents one constant required by a trait.
// Default is a Go expression used when an impl omits the constant;
// an empty Default marks the constant as required.
type TraitConst struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Default string `json:"default,omitempty"`
	Doc     string `json:"doc,omitempty"`
}

// ImplSpec represents a compiled impl declaration: constants bound to a
// receiver type. Trait is empty for free-standing impls (plain
// name/type/value triples with no trait contract).
type ImplSpec struct {
	Name   string      `json:"name"`
	Trait  string      `json:"trait,omitempty"`
	Doc    string      `json:"doc,omitempty"`
	Consts []ConstDecl `json:"consts"`
}

// ConstDecl represents one (name, type, value) triple on an impl.
// Type may be empty when the impl is bound to a trait that declares it.
// Value is a verbatim Go expression; assignability to Type is left to the
// host compiler.
type ConstDecl struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value string `json:"value"`
	Doc   string `json:"doc,omitempty"`
}

// Const returns the trait constant with the given name.
func (t *TraitSpec) Const(name string) (TraitConst, bool) {
	for _, c := range t.Consts {
		if c.Name == name {
			return c, true
		}
	}
	return TraitConst{}, false
}

// Const returns the impl constant with the given name.
func (s *ImplSpec) Const(name string) (ConstDecl, bool) {
	for _, c := range s.Consts {
		if c.Name == name {
			return c, true
		}
	}
	return ConstDecl{}, false
}
