package aggregation

import (
	"math"

	"github.com/aevon-lab/obrc/internal/core/record"
	"github.com/dolthub/swiss"
)

// swissTable is a Table backed by a SwissTable open-addressing map.
type swissTable struct {
	mode KeyMode
	m    *swiss.Map[string, *Accumulator]
}

func newSwissTable(mode KeyMode, sizeHint int) Table {
	hint := uint32(math.MaxUint32)
	if uint64(sizeHint) < math.MaxUint32 {
		hint = uint32(sizeHint)
	}
	return &swissTable{
		mode: mode,
		m:    swiss.NewMap[string, *Accumulator](hint),
	}
}

func (t *swissTable) Upsert(key []byte, v record.Tenths) {
	acc, ok := t.m.Get(view(key))
	if !ok {
		fresh := NewAccumulator()
		acc = &fresh
		t.m.Put(t.mode.key(key), acc)
	}
	acc.Update(v)
}

func (t *swissTable) MergeFrom(other Table) {
	other.Range(func(key string, incoming *Accumulator) bool {
		if acc, ok := t.m.Get(key); ok {
			acc.Merge(*incoming)
			return true
		}
		carried := *incoming
		t.m.Put(key, &carried)
		return true
	})
}

func (t *swissTable) Range(fn func(key string, acc *Accumulator) bool) {
	t.m.Iter(func(k string, acc *Accumulator) (stop bool) {
		return !fn(k, acc)
	})
}

func (t *swissTable) Get(key string) (Accumulator, bool) {
	acc, ok := t.m.Get(key)
	if !ok {
		return Accumulator{}, false
	}
	return *acc, true
}

func (t *swissTable) Len() int         { return t.m.Count() }
func (t *swissTable) KeyMode() KeyMode { return t.mode }
