package merkletree

import (
	"testing"

	"github.com/msgbox-sys/msgbox-go/storage/kv"
	"github.com/msgbox-sys/msgbox-go/storage/kv/leveldbkv"
)

func TestStoreLoadMap(t *testing.T) {
	leveldbkv.WithDB(t, func(db kv.DB) {
		m := NewMap()
		for i, s := range []string{"a", "b", "c"} {
			m.Set(KeyFromString(s), Uint64Hash(uint64(i+1)))
		}
		wb := db.NewBatch()
		if err := StoreMap(db, wb, 'T', m); err != nil {
			t.Fatal(err)
		}
		if err := db.Write(wb); err != nil {
			t.Fatal(err)
		}

		loaded, err := LoadMap(db, 'T')
		if err != nil {
			t.Fatal(err)
		}
		if loaded.Root() != m.Root() || loaded.Len() != 3 {
			t.Fatal("Expect the loaded map to equal the stored one")
		}

		// removing a key must also remove it from the db
		m.Set(KeyFromString("b"), ZeroHash)
		wb = db.NewBatch()
		if err := StoreMap(db, wb, 'T', m); err != nil {
			t.Fatal(err)
		}
		if err := db.Write(wb); err != nil {
			t.Fatal(err)
		}
		loaded, err = LoadMap(db, 'T')
		if err != nil {
			t.Fatal(err)
		}
		if loaded.Root() != m.Root() || loaded.Len() != 2 {
			t.Fatal("Expect the removed key to be gone")
		}

		other, err := LoadMap(db, 'U')
		if err != nil {
			t.Fatal(err)
		}
		if other.Root() != EmptyRoot() {
			t.Fatal("Expect an unused prefix to load as an empty map")
		}
	})
}

func TestLoadMapBadBuffer(t *testing.T) {
	leveldbkv.WithDB(t, func(db kv.DB) {
		if err := db.Put([]byte{'T', 1, 2}, []byte{1}); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadMap(db, 'T'); err != kv.ErrorBadBufferLength {
			t.Fatal("Expect ErrorBadBufferLength, got", err)
		}
	})
}
