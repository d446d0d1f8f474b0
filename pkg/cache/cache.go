// Package cache implements the transposition (fitness) cache of
// spec.md §4.5: a fixed-capacity, power-of-two, open-addressed table
// mapping genome signatures to fitnesses. Collisions are resolved by
// unconditional overwrite, not chaining — insertion is authoritative,
// so a later write simply evicts whatever the slot held. Adapted in
// shape from the teacher's sync.Map-based fitnessCache
// (pkg/deck/genetic/fitness_cache.go: a single global keyed by a
// joined card-name string), generalized here to a capacity-bounded,
// signature-keyed table a driver can size and persist explicitly.
package cache

import (
	"encoding/binary"
	"io"

	"github.com/klauer/vita/pkg/fitness"
	"github.com/klauer/vita/pkg/genome"
)

type slot struct {
	occupied  bool
	signature genome.Signature
	value     fitness.Fitness
	hits      uint64
}

// Cache is a fixed-size transposition table. It is not safe for
// concurrent use without external synchronization; spec.md §5 allows
// sharding by low signature bits for parallel evaluation, which callers
// can approximate by owning disjoint Cache instances keyed the same
// way and merging on read, or by guarding Insert with a mutex.
type Cache struct {
	slots []slot
	mask  uint64 // len(slots)-1, since len(slots) is a power of two
}

// New returns a Cache sized to the smallest power of two >= capacity
// (minimum 1).
func New(capacity int) *Cache {
	n := 1
	for n < capacity {
		n *= 2
	}
	return &Cache{slots: make([]slot, n), mask: uint64(n - 1)}
}

func (c *Cache) index(sig genome.Signature) uint64 {
	return binary.LittleEndian.Uint64(sig[:8]) & c.mask
}

// Insert unconditionally writes fitness f for signature sig, overwriting
// any prior occupant of that slot.
func (c *Cache) Insert(sig genome.Signature, f fitness.Fitness) {
	c.slots[c.index(sig)] = slot{occupied: true, signature: sig, value: f.Clone()}
}

// Find returns the stored fitness for sig and true, iff the slot is
// occupied and its full stored signature equals sig exactly (spec.md
// §4.5: "collisions are detected by full-signature comparison").
func (c *Cache) Find(sig genome.Signature) (fitness.Fitness, bool) {
	s := &c.slots[c.index(sig)]
	if !s.occupied || s.signature != sig {
		return nil, false
	}
	s.hits++
	return s.value.Clone(), true
}

// Clear invalidates every slot.
func (c *Cache) Clear() {
	for i := range c.slots {
		c.slots[i] = slot{}
	}
}

// Len returns the table's fixed slot count (its capacity, a power of
// two).
func (c *Cache) Len() int { return len(c.slots) }

// Occupied returns the number of currently-occupied slots.
func (c *Cache) Occupied() int {
	n := 0
	for i := range c.slots {
		if c.slots[i].occupied {
			n++
		}
	}
	return n
}

// Save writes a flat dump of occupied slots plus the table size to w:
// table size, occupied count, then for each occupied slot its
// signature, fitness width and components (spec.md §7 persisted-state
// requirements: element counts precede variable-length blocks).
func (c *Cache) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(len(c.slots))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(c.Occupied())); err != nil {
		return err
	}
	for i := range c.slots {
		s := &c.slots[i]
		if !s.occupied {
			continue
		}
		if _, err := w.Write(s.signature[:]); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint64(len(s.value))); err != nil {
			return err
		}
		for _, comp := range s.value {
			if err := binary.Write(w, binary.LittleEndian, comp); err != nil {
				return err
			}
		}
	}
	return nil
}

// Load replaces the cache's contents by reading a stream written by
// Save. The table is resized to the persisted size. Any unread trailing
// content after the declared occupied-slot count is the caller's
// responsibility to treat as an error per spec.md §7 ("unknown trailing
// content is an error") — Load itself only consumes exactly what the
// header declares.
func Load(r io.Reader) (*Cache, error) {
	var size, occupied uint64
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &occupied); err != nil {
		return nil, err
	}
	c := &Cache{slots: make([]slot, size), mask: size - 1}
	for i := uint64(0); i < occupied; i++ {
		var sig genome.Signature
		if _, err := io.ReadFull(r, sig[:]); err != nil {
			return nil, err
		}
		var width uint64
		if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
			return nil, err
		}
		f := make(fitness.Fitness, width)
		for k := range f {
			if err := binary.Read(r, binary.LittleEndian, &f[k]); err != nil {
				return nil, err
			}
		}
		c.slots[c.index(sig)] = slot{occupied: true, signature: sig, value: f}
	}
	return c, nil
}
