// bigx.go -- arbitrary precision helpers for the RSA layer
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

// Package bigx wraps math/big with the small set of number theoretic
// operations the RSA key generator needs: sized random integers, a
// next-prime search, modular exponentiation and inversion.
//
// Every function that consumes randomness takes an explicit io.Reader;
// callers pass crypto/rand.Reader in production and a seeded
// deterministic reader in tests.
package bigx

import (
	"errors"
	"fmt"
	"io"
	"math/big"
)

// number of Miller-Rabin rounds for the probable prime search.
// ProbablyPrime(n) is exact below 2^64 and uses n pseudo-random
// bases (plus a Baillie-PSW test) above it.
const _PrimeRounds = 20

var (
	ErrNoInverse = errors.New("bigx: no modular inverse exists")
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// RandomBits returns a uniform random integer of exactly 'bits' bits:
// the top bit is forced to 1 so that 2^(bits-1) <= x < 2^bits.
// A bit count of zero yields zero.
func RandomBits(r io.Reader, bits uint) (*big.Int, error) {
	if bits == 0 {
		return new(big.Int), nil
	}

	nb := (bits + 7) / 8
	b := make([]byte, nb)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("bigx: can't read %d random bytes: %w", nb, err)
	}

	// clear the excess high bits, then force the top bit
	if rem := bits % 8; rem != 0 {
		b[0] &= byte(1<<rem) - 1
	}

	x := new(big.Int).SetBytes(b)
	x.SetBit(x, int(bits-1), 1)
	return x, nil
}

// NextPrime returns the smallest probable prime strictly greater
// than x.
func NextPrime(x *big.Int) *big.Int {
	p := new(big.Int).Set(x)

	if p.Cmp(two) < 0 {
		return p.Set(two)
	}

	p.Add(p, one)
	if p.Bit(0) == 0 {
		p.Add(p, one)
	}

	for !p.ProbablyPrime(_PrimeRounds) {
		p.Add(p, two)
	}
	return p
}

// Powm returns base^exp mod mod.
func Powm(base, exp, mod *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, mod)
}

// Gcd returns the nonnegative greatest common divisor of a and b.
func Gcd(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// Invert returns x such that a*x == 1 (mod m). It fails with
// ErrNoInverse when a has no inverse mod m.
func Invert(a, m *big.Int) (*big.Int, error) {
	x := new(big.Int).ModInverse(a, m)
	if x == nil {
		return nil, ErrNoInverse
	}
	return x, nil
}

// ParseDecimal parses a canonical base-10 integer.
func ParseDecimal(s string) (*big.Int, error) {
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("bigx: %q is not a decimal integer", s)
	}
	return x, nil
}

// FormatDecimal renders x in canonical base-10.
func FormatDecimal(x *big.Int) string {
	return x.Text(10)
}

// LittleEndianKey exports x as a fixed-width little-endian byte
// buffer of n bytes. The minimal little-endian form is placed at the
// tail of the buffer with zero bytes in front; if the minimal form is
// longer than n bytes, only its last n bytes are kept.
func LittleEndianKey(x *big.Int, n int) []byte {
	raw := x.Bytes() // big-endian, minimal

	le := make([]byte, len(raw))
	for i, v := range raw {
		le[len(raw)-1-i] = v
	}

	out := make([]byte, n)
	if len(le) >= n {
		copy(out, le[len(le)-n:])
	} else {
		copy(out[n-len(le):], le)
	}
	return out
}

// Wipe zeroes the limbs of x. big.Int offers no secure erasure; this
// clears the current backing array before dropping the value to zero.
func Wipe(x *big.Int) {
	if x == nil {
		return
	}
	w := x.Bits()
	for i := range w {
		w[i] = 0
	}
	x.SetInt64(0)
}
