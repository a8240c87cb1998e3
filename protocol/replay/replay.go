// Package replay tracks the last accepted sequence number of a stream
// and admits only numbers that advance past it.
package replay

import (
	"github.com/msgbox-sys/msgbox-go/merkletree"
	"github.com/msgbox-sys/msgbox-go/protocol"
)

// Guard holds the last accepted number of a single stream.
// It is a value: Admit returns the guard to keep.
type Guard struct {
	Last protocol.MessageNumber
}

// Admit reports whether id advances past g.Last, and returns the
// guard advanced to id if it does, or g unchanged otherwise.
func (g Guard) Admit(id protocol.MessageNumber) (Guard, bool) {
	ok := id > g.Last
	return Guard{Last: protocol.Select(ok, id, g.Last)}, ok
}

// Keyed holds one Guard per key. It is not safe for concurrent use.
type Keyed struct {
	last map[merkletree.Hash]protocol.MessageNumber
}

// NewKeyed returns a Keyed in which every key is at 0.
func NewKeyed() Keyed {
	return Keyed{last: make(map[merkletree.Hash]protocol.MessageNumber)}
}

// Last returns the last accepted number of key.
func (k Keyed) Last(key merkletree.Hash) protocol.MessageNumber {
	return k.last[key]
}

// Admit checks id against the guard of key and advances the guard
// to id on acceptance. A rejected id leaves k unchanged.
func (k Keyed) Admit(key merkletree.Hash, id protocol.MessageNumber) bool {
	g, ok := Guard{Last: k.last[key]}.Admit(id)
	if ok {
		k.last[key] = g.Last
	}
	return ok
}

// Entries returns a copy of the accepted numbers, for persistence.
func (k Keyed) Entries() map[merkletree.Hash]protocol.MessageNumber {
	m := make(map[merkletree.Hash]protocol.MessageNumber, len(k.last))
	for key, v := range k.last {
		m[key] = v
	}
	return m
}

// KeyedFrom rebuilds a Keyed from persisted entries.
func KeyedFrom(entries map[merkletree.Hash]protocol.MessageNumber) Keyed {
	k := NewKeyed()
	for key, v := range entries {
		k.last[key] = v
	}
	return k
}
