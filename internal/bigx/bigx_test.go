// bigx_test.go -- tests for the arbitrary precision helpers
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

package bigx

import (
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomBits(t *testing.T) {
	rng := mrand.New(mrand.NewSource(1))

	for _, bits := range []uint{1, 2, 7, 8, 9, 127, 128, 255, 256, 1000} {
		x, err := RandomBits(rng, bits)
		require.NoError(t, err)
		require.Equal(t, int(bits), x.BitLen(),
			"want exactly %d bits", bits)
	}

	z, err := RandomBits(rng, 0)
	require.NoError(t, err)
	require.Zero(t, z.Sign())
}

func TestRandomBitsDeterministic(t *testing.T) {
	a, err := RandomBits(mrand.New(mrand.NewSource(42)), 256)
	require.NoError(t, err)

	b, err := RandomBits(mrand.New(mrand.NewSource(42)), 256)
	require.NoError(t, err)

	require.Zero(t, a.Cmp(b), "same seed produced different integers")
}

func TestNextPrime(t *testing.T) {
	cases := []struct {
		in, want int64
	}{
		{0, 2},
		{1, 2},
		{2, 3},
		{3, 5},
		{8, 11},
		{13, 17},
		{24, 29},
		{89, 97},
		{7919, 7927},
	}

	for _, c := range cases {
		p := NextPrime(big.NewInt(c.in))
		require.Equal(t, c.want, p.Int64(), "next prime after %d", c.in)
	}

	// a larger one: result must be prime and greater than the input
	rng := mrand.New(mrand.NewSource(2))
	x, err := RandomBits(rng, 200)
	require.NoError(t, err)

	p := NextPrime(x)
	require.True(t, p.Cmp(x) > 0)
	require.True(t, p.ProbablyPrime(64))
}

func TestPowm(t *testing.T) {
	// 4^13 mod 497 == 445
	r := Powm(big.NewInt(4), big.NewInt(13), big.NewInt(497))
	require.Equal(t, int64(445), r.Int64())
}

func TestGcd(t *testing.T) {
	require.Equal(t, int64(6), Gcd(big.NewInt(54), big.NewInt(24)).Int64())
	require.Equal(t, int64(1), Gcd(big.NewInt(65537), big.NewInt(600)).Int64())
	require.Equal(t, int64(6), Gcd(big.NewInt(-54), big.NewInt(24)).Int64())
}

func TestInvert(t *testing.T) {
	m := big.NewInt(3120)
	a := big.NewInt(17)

	x, err := Invert(a, m)
	require.NoError(t, err)

	prod := new(big.Int).Mul(a, x)
	prod.Mod(prod, m)
	require.Equal(t, int64(1), prod.Int64())

	// 6 shares a factor with 3120: no inverse
	_, err = Invert(big.NewInt(6), m)
	require.ErrorIs(t, err, ErrNoInverse)
}

func TestDecimalRoundTrip(t *testing.T) {
	rng := mrand.New(mrand.NewSource(3))
	x, err := RandomBits(rng, 512)
	require.NoError(t, err)

	y, err := ParseDecimal(FormatDecimal(x))
	require.NoError(t, err)
	require.Zero(t, x.Cmp(y))

	_, err = ParseDecimal("12ab34")
	require.Error(t, err)

	_, err = ParseDecimal("")
	require.Error(t, err)
}

func TestLittleEndianKey(t *testing.T) {
	// 0x0102 -> little endian is {02, 01}; front padded to width 4
	x := big.NewInt(0x0102)
	require.Equal(t, []byte{0, 0, 0x02, 0x01}, LittleEndianKey(x, 4))

	// zero: all padding
	require.Equal(t, make([]byte, 4), LittleEndianKey(new(big.Int), 4))

	// oversize values keep the trailing bytes of the export
	big5 := new(big.Int).SetBytes([]byte{5, 4, 3, 2, 1}) // LE: {1,2,3,4,5}
	require.Equal(t, []byte{2, 3, 4, 5}, LittleEndianKey(big5, 4))

	// width matches the session key use
	rng := mrand.New(mrand.NewSource(4))
	s, err := RandomBits(rng, 256)
	require.NoError(t, err)
	require.Len(t, LittleEndianKey(s, 32), 32)
}

func TestWipe(t *testing.T) {
	x := big.NewInt(0xdead)
	Wipe(x)
	require.Zero(t, x.Sign())

	Wipe(nil) // must not panic
}
