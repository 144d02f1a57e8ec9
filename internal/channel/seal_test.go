package channel

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"
)

func testSharedKey(t *testing.T) []byte {
	t.Helper()
	alicePub, alicePriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate alice keypair: %v", err)
	}
	bobPub, bobPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate bob keypair: %v", err)
	}

	alicePrivX, err := X25519PrivateKey(alicePriv)
	if err != nil {
		t.Fatalf("convert alice private key: %v", err)
	}
	bobPubX, err := X25519PublicKey(bobPub)
	if err != nil {
		t.Fatalf("convert bob public key: %v", err)
	}
	keyAB, err := SharedKey(alicePrivX, bobPubX)
	if err != nil {
		t.Fatalf("shared key a->b: %v", err)
	}

	// The other direction must agree.
	bobPrivX, err := X25519PrivateKey(bobPriv)
	if err != nil {
		t.Fatalf("convert bob private key: %v", err)
	}
	alicePubX, err := X25519PublicKey(alicePub)
	if err != nil {
		t.Fatalf("convert alice public key: %v", err)
	}
	keyBA, err := SharedKey(bobPrivX, alicePubX)
	if err != nil {
		t.Fatalf("shared key b->a: %v", err)
	}
	if !bytes.Equal(keyAB, keyBA) {
		t.Fatal("expected both directions to derive the same key")
	}
	return keyAB
}

func TestSealOpenRoundTrip(t *testing.T) {
	key := testSharedKey(t)

	plaintexts := [][]byte{
		[]byte(`{"action":"pinch","target":"Burt"}`),
		[]byte(`{"target":null}`),
		{},
		bytes.Repeat([]byte("x"), MaxActionLength),
	}

	for _, plaintext := range plaintexts {
		nonce, ciphertext, err := Seal(key, plaintext)
		if err != nil {
			t.Fatalf("seal: %v", err)
		}
		opened, err := Open(key, nonce, ciphertext)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if !bytes.Equal(opened, plaintext) {
			t.Fatalf("expected plaintext %q, got %q", plaintext, opened)
		}
	}
}

func TestSealFixedCiphertextLength(t *testing.T) {
	key := testSharedKey(t)

	_, short, err := Seal(key, []byte(`{"action":"scuttle"}`))
	if err != nil {
		t.Fatalf("seal short: %v", err)
	}
	_, long, err := Seal(key, bytes.Repeat([]byte("y"), MaxActionLength))
	if err != nil {
		t.Fatalf("seal long: %v", err)
	}
	if len(short) != len(long) {
		t.Fatalf("expected equal ciphertext lengths, got %d and %d", len(short), len(long))
	}
}

func TestSealRejectsOversizedPayload(t *testing.T) {
	key := testSharedKey(t)
	_, _, err := Seal(key, bytes.Repeat([]byte("z"), MaxActionLength+1))
	if !errors.Is(err, ErrActionTooLong) {
		t.Fatalf("expected ErrActionTooLong, got %v", err)
	}
}

func TestOpenRejectsBitFlips(t *testing.T) {
	key := testSharedKey(t)
	nonce, ciphertext, err := Seal(key, []byte(`{"action":"pinch","target":"Burt"}`))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	for i := 0; i < len(ciphertext); i += 37 {
		mutated := bytes.Clone(ciphertext)
		mutated[i] ^= 0x01
		if _, err := Open(key, nonce, mutated); !errors.Is(err, ErrOpenFailed) {
			t.Fatalf("expected ErrOpenFailed for flipped byte %d, got %v", i, err)
		}
	}
}

func TestOpenRejectsWrongKey(t *testing.T) {
	key := testSharedKey(t)
	otherKey := testSharedKey(t)

	nonce, ciphertext, err := Seal(key, []byte(`{"target":"Ada"}`))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := Open(otherKey, nonce, ciphertext); !errors.Is(err, ErrOpenFailed) {
		t.Fatalf("expected ErrOpenFailed with wrong key, got %v", err)
	}
}

func TestX25519PublicKeyRejectsDegenerate(t *testing.T) {
	if _, err := X25519PublicKey(make([]byte, 31)); !errors.Is(err, ErrInvalidKeySize) {
		t.Fatalf("expected ErrInvalidKeySize, got %v", err)
	}

	// A public key that is not a valid curve point fails decoding.
	junk := bytes.Repeat([]byte{0xff}, 32)
	if _, err := X25519PublicKey(junk); err == nil {
		t.Fatal("expected error for invalid point encoding")
	}
}
