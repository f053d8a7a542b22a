package ctl

// ----------------------------------------------------------------------------
// Symbol table
//
// A process-local, parser-scoped registry of user-defined type names
// (spec.md §3.3, §9 "symbol table as dynamic typing"). It exists only so the
// parser can tell, while scanning, whether a bare identifier names an
// enum/struct/class rather than an ordinary variable — a single
// map[string]TypeTag, not the generic utils.OrderedMap the teacher uses
// elsewhere, because nothing here needs insertion order: lookups are by
// name only, and redefinition is rejected rather than recorded twice.

// TypeTag distinguishes the three kinds of user-defined type name the
// symbol table can hold.
type TypeTag int

const (
	EnumType TypeTag = iota
	StructType
	ClassType
)

func (t TypeTag) String() string {
	switch t {
	case EnumType:
		return "enum_type"
	case StructType:
		return "struct_type"
	case ClassType:
		return "class_type"
	default:
		return "unknown_type"
	}
}

// symbolTableRegistry is the parser's live registry — renamed from a bare
// "symbol table" identifier to avoid colliding with keywords.go's lexer
// symbolTable (the fixed `( ) { } ...` punctuation table; an unrelated,
// read-only concept despite the similar name).
type symbolTableRegistry struct {
	entries map[string]TypeTag
}

func newSymbolTableRegistry() *symbolTableRegistry {
	return &symbolTableRegistry{entries: make(map[string]TypeTag)}
}

// register records name under tag. It reports false, recording nothing,
// when an enum is registered under a name that is already an enum (enums
// reject redefinition per spec.md §4.2.6); any other re-registration
// overwrites the entry and reports true (classes pre-register empty before
// their body is parsed, so self-references inside the body resolve).
func (s *symbolTableRegistry) register(name string, tag TypeTag) bool {
	if existing, ok := s.entries[name]; ok && existing == EnumType && tag == EnumType {
		return false
	}
	s.entries[name] = tag
	return true
}

// lookup reports the tag registered for name, if any.
func (s *symbolTableRegistry) lookup(name string) (TypeTag, bool) {
	tag, ok := s.entries[name]
	return tag, ok
}
