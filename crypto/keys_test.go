package crypto_test

import (
	"bytes"
	"strings"
	"testing"

	"threadloop/crypto"
)

func TestAddressRoundtrip(t *testing.T) {
	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	address := key.PubKey().Address()
	if address.Prefix() != crypto.ThreadPrefix {
		t.Fatalf("unexpected prefix: %s", address.Prefix())
	}
	encoded := address.String()
	if !strings.HasPrefix(encoded, string(crypto.ThreadPrefix)) {
		t.Fatalf("encoded address missing prefix: %s", encoded)
	}

	decoded, err := crypto.DecodeAddress(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(decoded.Bytes(), address.Bytes()) {
		t.Fatalf("roundtrip mismatch: %x vs %x", decoded.Bytes(), address.Bytes())
	}
	if decoded.Raw() != address.Raw() {
		t.Fatalf("raw representation mismatch")
	}
}

func TestDecodeAddressRejectsGarbage(t *testing.T) {
	if _, err := crypto.DecodeAddress("definitely not bech32"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestPrivateKeyRoundtrip(t *testing.T) {
	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	restored, err := crypto.PrivateKeyFromBytes(key.Bytes())
	if err != nil {
		t.Fatalf("restore key: %v", err)
	}
	if restored.PubKey().Address().String() != key.PubKey().Address().String() {
		t.Fatalf("restored key derives a different address")
	}
}
