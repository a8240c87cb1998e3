package leveldbkv

import (
	"testing"

	"github.com/msgbox-sys/msgbox-go/storage/kv"
)

// WithDB opens an in-memory database, runs f against it and closes
// the database afterwards. It is meant to be used in _tests_ only.
func WithDB(t testing.TB, f func(db kv.DB)) {
	db, err := OpenMem()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	f(db)
}
