package merkletree

import (
	"github.com/msgbox-sys/msgbox-go/storage/kv"
)

func leafKey(prefix byte, key Hash) []byte {
	k := make([]byte, 0, 1+len(key))
	k = append(k, prefix)
	return append(k, key[:]...)
}

// StoreMap adds to wb the operations that make the leaves stored
// under prefix in db mirror the leaves of m. Leaves that were removed
// from m since the last store are deleted.
// The interior nodes are not stored; LoadMap recomputes them.
func StoreMap(db kv.DB, wb kv.Batch, prefix byte, m *Map) error {
	iter := db.NewIterator(kv.BytesPrefix([]byte{prefix}))
	for ok := iter.First(); ok; ok = iter.Next() {
		dbKey := iter.Key()
		key, err := HashFromBytes(dbKey[1:])
		if err != nil {
			iter.Release()
			return kv.ErrorBadBufferLength
		}
		if _, live := m.leaves[key]; !live {
			wb.Delete(append([]byte(nil), dbKey...))
		}
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return err
	}

	for k, v := range m.leaves {
		value := v
		wb.Put(leafKey(prefix, k), value[:])
	}
	return nil
}

// LoadMap reads the leaves stored under prefix in db
// and rebuilds the map from them.
func LoadMap(db kv.DB, prefix byte) (*Map, error) {
	m := NewMap()
	iter := db.NewIterator(kv.BytesPrefix([]byte{prefix}))
	defer iter.Release()
	for ok := iter.First(); ok; ok = iter.Next() {
		key, err := HashFromBytes(iter.Key()[1:])
		if err != nil {
			return nil, kv.ErrorBadBufferLength
		}
		value, err := HashFromBytes(iter.Value())
		if err != nil {
			return nil, kv.ErrorBadBufferLength
		}
		m.Set(key, value)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return m, nil
}
