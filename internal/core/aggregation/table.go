package aggregation

import (
	"fmt"
	"unsafe"

	"github.com/aevon-lab/obrc/internal/core/record"
)

// KeyMode decides who owns the station keys stored in a Table.
type KeyMode int

const (
	// KeyBorrowed stores keys as views into the input buffer. No per-key allocation;
	// the table must not outlive the buffer.
	KeyBorrowed KeyMode = iota
	// KeyOwned copies each key on first insert.
	KeyOwned
)

// ParseKeyMode maps a config value to a KeyMode.
func ParseKeyMode(s string) (KeyMode, error) {
	switch s {
	case "borrowed", "":
		return KeyBorrowed, nil
	case "owned":
		return KeyOwned, nil
	default:
		return 0, fmt.Errorf("unsupported key mode %q", s)
	}
}

func (m KeyMode) String() string {
	if m == KeyOwned {
		return "owned"
	}
	return "borrowed"
}

// key returns the string stored for a newly seen key.
func (m KeyMode) key(b []byte) string {
	if m == KeyOwned {
		return string(b)
	}
	return view(b)
}

// view aliases b as a string. Only valid while b is neither freed nor mutated.
func view(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Table is the per-key accumulator map the engine folds into and merges.
// A Table is owned by one goroutine at a time; it has no internal locking.
type Table interface {
	// Upsert looks up key, inserting a fresh accumulator if absent, and folds v into it.
	Upsert(key []byte, v record.Tenths)
	// MergeFrom folds every accumulator of other into the receiver. Keys of other
	// are stored as they are, so both tables must share a KeyMode.
	// other must not be used by its previous owner afterwards.
	MergeFrom(other Table)
	// Range calls fn for every entry in unspecified order until fn returns false.
	Range(fn func(key string, acc *Accumulator) bool)
	// Get returns a copy of the accumulator stored for key.
	Get(key string) (Accumulator, bool)
	Len() int
	KeyMode() KeyMode
}

// TableKind names a Table implementation.
type TableKind string

const (
	TableSwiss TableKind = "swiss"
	TableMap   TableKind = "map"
)

const defaultSizeHint = 1024

// Tables is the registry of Table implementations.
// To add one: implement Table and register its constructor here.
var Tables = map[TableKind]func(mode KeyMode, sizeHint int) Table{
	TableSwiss: newSwissTable,
	TableMap:   newMapTable,
}

// ValidTable reports whether kind is a registered Table implementation.
func ValidTable(kind TableKind) bool {
	_, ok := Tables[kind]
	return ok
}

// NewTable builds an empty table of the given kind.
func NewTable(kind TableKind, mode KeyMode, sizeHint int) (Table, error) {
	ctor, ok := Tables[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported table %q", kind)
	}
	if sizeHint <= 0 {
		sizeHint = defaultSizeHint
	}
	return ctor(mode, sizeHint), nil
}
