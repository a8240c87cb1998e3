package sign

import (
	"testing"
)

// copied from official crypto.ed25519 tests
func TestVerifySignature(t *testing.T) {
	key, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}

	message := []byte("test message")
	sig := key.Sign(message)

	pk, ok := key.Public()
	if !ok {
		t.Errorf("bad PK?")
	}

	if !pk.Verify(message, sig) {
		t.Errorf("valid signature rejected")
	}

	wrongMessage := []byte("wrong message")
	if pk.Verify(wrongMessage, sig) {
		t.Errorf("signature of different message accepted")
	}
}

func TestMalformedKeys(t *testing.T) {
	if _, ok := PrivateKey([]byte{1, 2, 3}).Public(); ok {
		t.Error("Expect a truncated private key to be rejected")
	}
	if PublicKey([]byte{1, 2, 3}).Verify([]byte("msg"), make([]byte, 64)) {
		t.Error("Expect a truncated public key never to verify")
	}
}
