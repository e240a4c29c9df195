// encrypt.go -- RSA sealed, Serpent encrypted file hybrid
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

// Implementation Notes for the hybrid workflow:
//
// The sender draws a fresh 256-bit session key, seals it with the
// recipient's RSA public key (textbook RSA is fine here: the
// plaintext is a uniformly random integer below n), and encrypts the
// file content with Serpent keyed by the session key.
//
// The sealed session key travels as one ASCII decimal token; the
// ciphertext file is raw Serpent blocks. The receiver unseals the
// token with the RSA private key and reverses the file mode.
//
// The 256-bit integer becomes the 32-byte Serpent key via a fixed
// convention: minimal little-endian export, zero padded at the front
// of the buffer, trailing 32 bytes kept if oversized. Both ends of
// this implementation share the convention.

package sftool

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/sftcrypt/sftool/internal/bigx"
	"github.com/sftcrypt/sftool/internal/serpent"
)

// SessionKeyBits is the size of the symmetric session key.
const SessionKeyBits = 256

// Encryptor holds the sender side hybrid context: a sealed session
// key and a Serpent instance keyed with it.
type Encryptor struct {
	sealed string
	blk    *serpent.Cipher

	sess *big.Int
}

// NewEncryptor draws a fresh session key from 'random'
// (crypto/rand.Reader when nil), seals it with the recipient public
// key 'pk' and keys the bulk cipher.
func NewEncryptor(pk *Key, random io.Reader) (*Encryptor, error) {
	if random == nil {
		random = rand.Reader
	}

	// a 256-bit session key needs headroom below the modulus
	if pk.N.BitLen() <= SessionKeyBits {
		return nil, ErrSmallModulus
	}

	sess, err := bigx.RandomBits(random, SessionKeyBits)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	c, err := pk.Encrypt(sess)
	if err != nil {
		return nil, fmt.Errorf("encrypt: seal: %w", err)
	}

	blk, err := serpent.NewCipher(bigx.LittleEndianKey(sess, serpent.KeySize))
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	e := &Encryptor{
		sealed: bigx.FormatDecimal(c),
		blk:    blk,
		sess:   sess,
	}
	return e, nil
}

// SealedKey returns the RSA sealed session key as a single decimal
// token with no trailing whitespace.
func (e *Encryptor) SealedKey() string {
	return e.sealed
}

// Encrypt runs the Serpent file mode over rd into wr.
func (e *Encryptor) Encrypt(rd io.Reader, wr io.Writer) error {
	return EncryptStream(e.blk, rd, wr)
}

// Close wipes the session key and the cipher's subkeys.
func (e *Encryptor) Close() {
	bigx.Wipe(e.sess)
	e.blk.Reset()
}

// Decryptor holds the receiver side hybrid context.
type Decryptor struct {
	blk *serpent.Cipher

	sess *big.Int
}

// NewDecryptor unseals the session key token with the private key
// 'sk' and keys the bulk cipher for decryption.
func NewDecryptor(sk *Key, sealed string) (*Decryptor, error) {
	c, err := bigx.ParseDecimal(strings.TrimSpace(sealed))
	if err != nil {
		return nil, fmt.Errorf("decrypt: sealed key: %w", err)
	}

	sess, err := sk.Decrypt(c)
	if err != nil {
		return nil, fmt.Errorf("decrypt: unseal: %w", err)
	}

	blk, err := serpent.NewCipher(bigx.LittleEndianKey(sess, serpent.KeySize))
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}

	d := &Decryptor{
		blk:  blk,
		sess: sess,
	}
	return d, nil
}

// Decrypt reverses the Serpent file mode from rd into wr. No output
// is written when the ciphertext or its padding is invalid.
func (d *Decryptor) Decrypt(rd io.Reader, wr io.Writer) error {
	return DecryptStream(d.blk, rd, wr)
}

// Close wipes the session key and the cipher's subkeys.
func (d *Decryptor) Close() {
	bigx.Wipe(d.sess)
	d.blk.Reset()
}
