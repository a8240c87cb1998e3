package merkletree

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/msgbox-sys/msgbox-go/crypto"
	"github.com/msgbox-sys/msgbox-go/utils"
)

// nodeID identifies a node by its level and the first level bits
// of any key below it.
type nodeID [2 + crypto.HashSizeByte]byte

func makeNodeID(level int, key Hash) nodeID {
	var id nodeID
	binary.BigEndian.PutUint16(id[:2], uint16(level))
	utils.MaskBits(key[:], uint32(level))
	copy(id[2:], key[:])
	return id
}

func siblingKey(key Hash, bit int) Hash {
	utils.FlipNthBit(key[:], uint32(bit))
	return key
}

// Map is the off-chain holder of a sparse Merkle map. It keeps
// every non-sentinel leaf and the hashes of the non-empty nodes,
// which is what is needed to produce witnesses for any key.
// A Map is not safe for concurrent use.
type Map struct {
	leaves map[Hash]Hash
	nodes  map[nodeID]Hash
}

// NewMap returns an empty map. Its root equals EmptyRoot().
func NewMap() *Map {
	return &Map{
		leaves: make(map[Hash]Hash),
		nodes:  make(map[nodeID]Hash),
	}
}

func (m *Map) node(level int, key Hash) Hash {
	if h, ok := m.nodes[makeNodeID(level, key)]; ok {
		return h
	}
	return emptyHashes[level]
}

func (m *Map) setNode(level int, key Hash, h Hash) {
	id := makeNodeID(level, key)
	if h == emptyHashes[level] {
		delete(m.nodes, id)
		return
	}
	m.nodes[id] = h
}

// Set associates key with value and recomputes the hashes on the
// key's path. Setting ZeroHash removes the key.
func (m *Map) Set(key, value Hash) {
	if value.IsZero() {
		delete(m.leaves, key)
	} else {
		m.leaves[key] = value
	}

	h := hashLeaf(value)
	m.setNode(Depth, key, h)
	for level := Depth; level > 0; level-- {
		bit := level - 1
		sibling := m.node(level, siblingKey(key, bit))
		if utils.GetNthBit(key[:], uint32(bit)) { // right child
			h = hashInterior(sibling, h)
		} else {
			h = hashInterior(h, sibling)
		}
		m.setNode(level-1, key, h)
	}
}

// Get returns the value held by key, or ZeroHash if the key is absent.
func (m *Map) Get(key Hash) Hash {
	return m.leaves[key]
}

// Root returns the current commitment to the map's contents.
func (m *Map) Root() Hash {
	return m.node(0, ZeroHash)
}

// Witness returns the authentication path of key. It is valid
// against the current root, for the value currently held by key.
func (m *Map) Witness(key Hash) *Witness {
	w := &Witness{Key: key}
	for i := 0; i < Depth; i++ {
		w.Siblings[i] = m.node(i+1, siblingKey(key, i))
	}
	return w
}

// Len returns the number of keys holding a non-sentinel value.
func (m *Map) Len() int {
	return len(m.leaves)
}

// Keys returns the keys holding a non-sentinel value in
// ascending byte order.
func (m *Map) Keys() []Hash {
	keys := make([]Hash, 0, len(m.leaves))
	for k := range m.leaves {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})
	return keys
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	c := &Map{
		leaves: make(map[Hash]Hash, len(m.leaves)),
		nodes:  make(map[nodeID]Hash, len(m.nodes)),
	}
	for k, v := range m.leaves {
		c.leaves[k] = v
	}
	for k, v := range m.nodes {
		c.nodes[k] = v
	}
	return c
}
