package crypto

import (
	"bytes"

	"github.com/msgbox-sys/msgbox-go/crypto/sign"
)

// NewStaticTestSigningKey returns a static private signing key for _tests_.
func NewStaticTestSigningKey() sign.PrivateKey {
	sk, err := sign.GenerateKey(bytes.NewReader(
		[]byte("deterministic tests need 256 bit")))
	if err != nil {
		panic(err)
	}
	return sk
}

// NewStaticTestSigningKeys returns n distinct static private signing keys
// for _tests_.
func NewStaticTestSigningKeys(n int) []sign.PrivateKey {
	keys := make([]sign.PrivateKey, 0, n)
	for i := 0; i < n; i++ {
		seed := Digest([]byte("deterministic test key"), []byte{byte(i), byte(i >> 8)})
		sk, err := sign.GenerateKey(bytes.NewReader(seed))
		if err != nil {
			panic(err)
		}
		keys = append(keys, sk)
	}
	return keys
}
