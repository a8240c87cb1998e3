package merkletree

import (
	"github.com/msgbox-sys/msgbox-go/crypto"
)

// KeyFromString derives a map key from s. It is meant for _tests_.
func KeyFromString(s string) Hash {
	var h Hash
	copy(h[:], crypto.Digest([]byte(s)))
	return h
}
