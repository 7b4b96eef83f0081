package aggregation

import "github.com/aevon-lab/obrc/internal/core/record"

// mapTable is a Table backed by the builtin map.
type mapTable struct {
	mode KeyMode
	m    map[string]*Accumulator
}

func newMapTable(mode KeyMode, sizeHint int) Table {
	return &mapTable{
		mode: mode,
		m:    make(map[string]*Accumulator, sizeHint),
	}
}

func (t *mapTable) Upsert(key []byte, v record.Tenths) {
	acc, ok := t.m[string(key)]
	if !ok {
		fresh := NewAccumulator()
		acc = &fresh
		t.m[t.mode.key(key)] = acc
	}
	acc.Update(v)
}

func (t *mapTable) MergeFrom(other Table) {
	other.Range(func(key string, incoming *Accumulator) bool {
		if acc, ok := t.m[key]; ok {
			acc.Merge(*incoming)
			return true
		}
		carried := *incoming
		t.m[key] = &carried
		return true
	})
}

func (t *mapTable) Range(fn func(key string, acc *Accumulator) bool) {
	for k, acc := range t.m {
		if !fn(k, acc) {
			return
		}
	}
}

func (t *mapTable) Get(key string) (Accumulator, bool) {
	acc, ok := t.m[key]
	if !ok {
		return Accumulator{}, false
	}
	return *acc, true
}

func (t *mapTable) Len() int         { return len(t.m) }
func (t *mapTable) KeyMode() KeyMode { return t.mode }
