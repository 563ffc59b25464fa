// Package docname implements CanonicalName: an equality class over symbol
// and crate names that treats '-' and '_' as identical, the way cargo
// treats package names. Two names that differ only by dash/underscore
// substitution are the same name everywhere in rdoc.
package docname

import (
	"hash/maphash"
	"sync"
)

var seed = maphash.MakeSeed()

// Name is an interned, canonicalized symbol or crate name. The zero Name
// is not valid; construct one with From. Name is comparable and suitable
// as a map key: two Names built from raw strings that agree under
// canonicalization compare equal.
type Name struct {
	id int32
}

type entry struct {
	raw       string
	canonical string
	hash      uint64
}

var (
	mu        sync.Mutex
	byCanon   = make(map[string]int32)
	entries   = []entry{{}} // index 0 reserved for the zero Name
)

// canonicalize lowercases and folds '-' to '_', matching §4.A's
// no-allocation iteration requirement (done here with a single pass over
// a pre-sized byte slice rather than strings.Map, which would allocate
// per rune).
func canonicalize(raw string) string {
	out := make([]byte, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '-':
			c = '_'
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// HashRaw computes the canonical hash of raw directly, one byte at a
// time, without ever materializing the canonicalized string. Two raw
// strings that differ only by dash/underscore substitution and ASCII
// case hash identically (§4.A, §8 property 1).
func HashRaw(raw string) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '-':
			c = '_'
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		}
		h.WriteByte(c)
	}
	return h.Sum64()
}

// From interns raw and returns its Name. The first raw form seen for a
// given canonical form is retained for Display; later aliases are folded
// into the same Name without replacing the stored display form.
func From(raw string) Name {
	canon := canonicalize(raw)

	mu.Lock()
	defer mu.Unlock()

	if id, ok := byCanon[canon]; ok {
		return Name{id: id}
	}
	id := int32(len(entries))
	entries = append(entries, entry{raw: raw, canonical: canon, hash: HashRaw(raw)})
	byCanon[canon] = id
	return Name{id: id}
}

// Hash returns the canonical hash of n, equal for any two Names whose
// raw forms differ only by dash/underscore or ASCII case.
func (n Name) Hash() uint64 {
	if n.id == 0 {
		return 0
	}
	mu.Lock()
	defer mu.Unlock()
	return entries[n.id].hash
}

// Canonical returns the canonical (lowercased, dash-folded) form.
func (n Name) Canonical() string {
	if n.id == 0 {
		return ""
	}
	mu.Lock()
	defer mu.Unlock()
	return entries[n.id].canonical
}

// String returns the original raw form the Name was first constructed
// from, preserving the user's dash/underscore and case choice for display.
func (n Name) String() string {
	if n.id == 0 {
		return ""
	}
	mu.Lock()
	defer mu.Unlock()
	return entries[n.id].raw
}

// IsZero reports whether n is the zero value (never interned).
func (n Name) IsZero() bool { return n.id == 0 }

// Equal reports whether n and other denote the same canonical name. Since
// From interns by canonical form, this is just an id comparison — but the
// method exists so call sites don't need to know Name is comparable by
// construction.
func (n Name) Equal(other Name) bool { return n.id == other.id }
