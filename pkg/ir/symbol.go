package ir

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"
)

// StorageKind indicates where a [Symbol] is stored and how visible it is.
type StorageKind int

const (
	// StorageUndefined is an unspecified storage kind.
	StorageUndefined StorageKind = iota
	// StorageNormal symbols are accessible outside the module.
	StorageNormal
	// StorageStatic symbols are accessible only within the module.
	StorageStatic
	// StorageExtern symbols are defined outside of the module.
	StorageExtern
	// StorageLocal symbols are stored in a function's activation frame.
	StorageLocal
)

const storagePrefix = "Storage"

var storageKindNames = map[StorageKind]string{
	StorageUndefined: "Undefined",
	StorageNormal:    "Normal",
	StorageStatic:    "Static",
	StorageExtern:    "Extern",
	StorageLocal:     "Local",
}

func (k StorageKind) String() string {
	if name, ok := storageKindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("StorageKind(%d)", int(k))
}

// MarshalText implements [encoding.TextMarshaler].
func (k StorageKind) MarshalText() ([]byte, error) {
	name, ok := storageKindNames[k]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStorageKind, int(k))
	}

	return []byte(name), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *StorageKind) UnmarshalText(text []byte) error {
	parsed, err := ParseStorageKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// ParseStorageKind parses a storage kind name. Matching ignores case and
// accepts an optional "Storage" prefix, so "normal", "Normal",
// "Storage_Normal" and "storage-normal" are equivalent.
func ParseStorageKind(s string) (StorageKind, error) {
	name := strcase.ToCamel(strings.TrimSpace(s))
	if len(name) > len(storagePrefix) && strings.EqualFold(name[:len(storagePrefix)], storagePrefix) {
		name = name[len(storagePrefix):]
	}

	for k, v := range storageKindNames {
		if strings.EqualFold(v, name) {
			return k, nil
		}
	}

	return StorageUndefined, fmt.Errorf("%w: %q", ErrInvalidStorageKind, s)
}

// Symbol maps a name to an address or to another node of the IR.
//
// The payload is either an address (see [Symbol.Value]) or a referent node
// (see [Symbol.Referent]), never both.
type Symbol struct {
	NodeID

	payload     any
	Name        string
	StorageKind StorageKind
}

// SymbolOption configures a [Symbol] created with [NewSymbol].
type SymbolOption func(*Symbol)

// WithStorageKind sets the storage kind.
func WithStorageKind(k StorageKind) SymbolOption {
	return func(s *Symbol) {
		s.StorageKind = k
	}
}

// WithUUID sets the node identity instead of generating one.
func WithUUID(id uuid.UUID) SymbolOption {
	return func(s *Symbol) {
		s.NodeID = NewNodeID(id)
	}
}

// WithValue sets the payload to an address.
func WithValue(addr uint64) SymbolOption {
	return func(s *Symbol) {
		s.SetValue(addr)
	}
}

// WithReferent sets the payload to a node.
func WithReferent(n Node) SymbolOption {
	return func(s *Symbol) {
		s.SetReferent(n)
	}
}

// NewSymbol creates a new [Symbol] with a random UUID and an empty payload.
func NewSymbol(name string, opts ...SymbolOption) *Symbol {
	s := &Symbol{
		NodeID: NewNodeID(uuid.Nil),
		Name:   name,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Value returns the address payload, if the symbol has one.
func (s *Symbol) Value() (uint64, bool) {
	v, ok := s.payload.(uint64)

	return v, ok
}

// Referent returns the node payload, if the symbol has one.
func (s *Symbol) Referent() (Node, bool) {
	n, ok := s.payload.(Node)

	return n, ok
}

// SetValue replaces the payload with an address.
func (s *Symbol) SetValue(addr uint64) {
	s.payload = addr
}

// SetReferent replaces the payload with n. A nil n clears the payload.
func (s *Symbol) SetReferent(n Node) {
	if n == nil {
		s.payload = nil

		return
	}

	s.payload = n
}

// ClearPayload removes any address or referent.
func (s *Symbol) ClearPayload() {
	s.payload = nil
}

// DeepEqual reports whether s and other have the same identity, name,
// storage kind and payload. Referents are compared by UUID.
func (s *Symbol) DeepEqual(other *Symbol) bool {
	if s == nil || other == nil {
		return s == other
	}

	if s.UUID() != other.UUID() || s.Name != other.Name || s.StorageKind != other.StorageKind {
		return false
	}

	sv, sHasValue := s.Value()
	ov, oHasValue := other.Value()

	if sHasValue != oHasValue || sv != ov {
		return false
	}

	sr, sHasRef := s.Referent()
	or, oHasRef := other.Referent()

	if sHasRef != oHasRef {
		return false
	}

	return !sHasRef || sr.UUID() == or.UUID()
}

func (s *Symbol) String() string {
	var payload string

	if v, ok := s.Value(); ok {
		payload = fmt.Sprintf("%#x", v)
	} else if n, ok := s.Referent(); ok {
		payload = n.UUID().String()
	} else {
		payload = "<none>"
	}

	return fmt.Sprintf("Symbol(uuid=%s, name=%q, storage_kind=%s, payload=%s)",
		s.UUID(), s.Name, s.StorageKind, payload)
}
