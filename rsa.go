// rsa.go -- textbook RSA over math/big
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

// This file implements:
//   - RSA key generation
//   - raw (unpadded) encrypt/decrypt of big integers
//
// There is deliberately no message padding: the only plaintext this
// tool ever seals with RSA is a uniformly random session key smaller
// than the modulus.

package sftool

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/sftcrypt/sftool/internal/bigx"
)

// PublicExponent is the preferred RSA public exponent.
const PublicExponent = 65537

// Key is an RSA key: modulus N, public exponent E and, for a private
// key, the private exponent D (nil for a public-only key). Keys are
// never mutated after creation; Wipe erases the private exponent.
type Key struct {
	N *big.Int
	E *big.Int
	D *big.Int
}

// Keygen generates an RSA key of 'bits' modulus bits using random
// bytes from 'random' (crypto/rand.Reader when nil). bits must be at
// least 256.
func Keygen(random io.Reader, bits int) (*Key, error) {
	if bits < 256 {
		return nil, ErrKeyBits
	}
	if random == nil {
		random = rand.Reader
	}

	half := uint(bits / 2)

	p, err := genPrime(random, half)
	if err != nil {
		return nil, err
	}

	q, err := genPrime(random, uint(bits)-half)
	if err != nil {
		return nil, err
	}

	// regenerate q until it differs from p and the modulus has the
	// full 'bits' bits
	n := new(big.Int).Mul(p, q)
	for p.Cmp(q) == 0 || n.BitLen() < bits {
		if q, err = genPrime(random, uint(bits)-half); err != nil {
			return nil, err
		}
		n.Mul(p, q)
	}

	one := big.NewInt(1)
	phi := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))

	e := big.NewInt(PublicExponent)
	if bigx.Gcd(e, phi).Cmp(one) != 0 {
		if e, err = oddCoprime(random, phi); err != nil {
			return nil, err
		}
	}

	d, err := bigx.Invert(e, phi)
	if err != nil {
		// keygen guarantees gcd(e, phi) == 1; an inversion
		// failure here means the arithmetic layer is broken
		return nil, ErrNoInverse
	}

	bigx.Wipe(p)
	bigx.Wipe(q)
	bigx.Wipe(phi)

	return &Key{N: n, E: e, D: d}, nil
}

// genPrime returns a probable prime of exactly 'bits' bits (top bit
// forced before the next-prime search).
func genPrime(random io.Reader, bits uint) (*big.Int, error) {
	x, err := bigx.RandomBits(random, bits)
	if err != nil {
		return nil, fmt.Errorf("keygen: %w", err)
	}
	return bigx.NextPrime(x), nil
}

// oddCoprime samples odd integers in [3, phi) until one is coprime to
// phi. Only reached when 65537 divides phi.
func oddCoprime(random io.Reader, phi *big.Int) (*big.Int, error) {
	one := big.NewInt(1)
	three := big.NewInt(3)
	span := new(big.Int).Sub(phi, three)

	for {
		e, err := rand.Int(random, span)
		if err != nil {
			return nil, fmt.Errorf("keygen: %w", err)
		}
		e.Add(e, three)
		e.Or(e, one)

		if bigx.Gcd(e, phi).Cmp(one) == 0 {
			return e, nil
		}
	}
}

// Public returns the public portion (n, e) of the key.
func (k *Key) Public() *Key {
	return &Key{N: k.N, E: k.E}
}

// IsPrivate returns true if the key carries a private exponent.
func (k *Key) IsPrivate() bool {
	return k.D != nil
}

// Encrypt returns m^e mod n. m must be in [0, n).
func (k *Key) Encrypt(m *big.Int) (*big.Int, error) {
	if m.Sign() < 0 || m.Cmp(k.N) >= 0 {
		return nil, ErrMsgRange
	}
	return bigx.Powm(m, k.E, k.N), nil
}

// Decrypt returns c^d mod n. c must be in [0, n) and the key must be
// a private key.
func (k *Key) Decrypt(c *big.Int) (*big.Int, error) {
	if k.D == nil {
		return nil, ErrNoPrivateKey
	}
	if c.Sign() < 0 || c.Cmp(k.N) >= 0 {
		return nil, ErrMsgRange
	}
	return bigx.Powm(c, k.D, k.N), nil
}

// Wipe erases the private exponent. The public portion stays intact.
func (k *Key) Wipe() {
	bigx.Wipe(k.D)
	k.D = nil
}
