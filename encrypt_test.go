// encrypt_test.go -- Test harness for the hybrid seal/encrypt flow
//
// (c) 2016 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package sftool

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// seal a session key, encrypt a buffer, unseal and decrypt it back
func TestHybridRoundTrip(t *testing.T) {
	assert := newAsserter(t)

	k := testKey(t)

	sizes := []int{0, 1, 15, 16, 17, 31, 32, 1000, 65536}
	for _, n := range sizes {
		pt := make([]byte, n)
		seededRand(int64(n) + 5).Read(pt)

		en, err := NewEncryptor(k.Public(), seededRand(99))
		assert(err == nil, "n=%d: encryptor create fail: %s", n, err)

		ct := &bytes.Buffer{}
		err = en.Encrypt(bytes.NewReader(pt), ct)
		assert(err == nil, "n=%d: encrypt fail: %s", n, err)
		assert(ct.Len() == ((n/16)+1)*16, "n=%d: ciphertext length %d", n, ct.Len())

		de, err := NewDecryptor(k, en.SealedKey())
		assert(err == nil, "n=%d: decryptor create fail: %s", n, err)

		out := &bytes.Buffer{}
		err = de.Decrypt(bytes.NewReader(ct.Bytes()), out)
		assert(err == nil, "n=%d: decrypt fail: %s", n, err)
		assert(byteEq(out.Bytes(), pt), "n=%d: round trip mismatch", n)

		en.Close()
		de.Close()
	}
}

// the sealed key is one decimal token, no surrounding whitespace
func TestSealedKeyFormat(t *testing.T) {
	assert := newAsserter(t)

	en, err := NewEncryptor(testKey(t).Public(), seededRand(21))
	assert(err == nil, "encryptor create fail: %s", err)
	defer en.Close()

	s := en.SealedKey()
	assert(len(s) > 0, "empty sealed key")
	assert(strings.TrimSpace(s) == s, "sealed key has surrounding whitespace")
	for _, c := range s {
		assert(c >= '0' && c <= '9', "sealed key has non-digit %q", c)
	}

	// the parser is forgiving about a trailing newline
	_, err = NewDecryptor(testKey(t), s+"\n")
	assert(err == nil, "trailing newline rejected: %s", err)
}

// a modulus with no headroom above 256 bits can't seal a session key
func TestHybridSmallModulus(t *testing.T) {
	assert := newAsserter(t)

	k, err := Keygen(seededRand(31), 256)
	assert(err == nil, "keygen fail: %s", err)

	_, err = NewEncryptor(k.Public(), seededRand(32))
	assert(errors.Is(err, ErrSmallModulus), "want ErrSmallModulus, have %v", err)
}

// a garbled sealed key token must not make a decryptor
func TestHybridBadToken(t *testing.T) {
	assert := newAsserter(t)

	_, err := NewDecryptor(testKey(t), "not-a-number")
	assert(err != nil, "decryptor accepted junk token")

	_, err = NewDecryptor(testKey(t), "")
	assert(err != nil, "decryptor accepted empty token")
}

// decrypting with the wrong private key must not produce the
// plaintext (overwhelmingly it fails the padding check)
func TestHybridWrongKey(t *testing.T) {
	assert := newAsserter(t)

	k := testKey(t)

	wrong, err := Keygen(seededRand(77), 512)
	assert(err == nil, "keygen fail: %s", err)

	pt := []byte("the magic words are squeamish ossifrage")

	en, err := NewEncryptor(k.Public(), seededRand(50))
	assert(err == nil, "encryptor create fail: %s", err)
	defer en.Close()

	ct := &bytes.Buffer{}
	err = en.Encrypt(bytes.NewReader(pt), ct)
	assert(err == nil, "encrypt fail: %s", err)

	de, err := NewDecryptor(wrong, en.SealedKey())
	if err != nil {
		// the sealed integer can exceed the wrong modulus
		assert(errors.Is(err, ErrMsgRange), "unexpected create error: %v", err)
		return
	}
	defer de.Close()

	out := &bytes.Buffer{}
	err = de.Decrypt(bytes.NewReader(ct.Bytes()), out)
	if err == nil {
		assert(!byteEq(out.Bytes(), pt), "wrong key recovered the plaintext")
	}
}
