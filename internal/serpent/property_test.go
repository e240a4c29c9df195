// property_test.go -- property-based invariants for the cipher
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

package serpent

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// These properties must hold for every key and every block; gopter
// hammers them with generated inputs.
func TestCipherProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("decrypt inverts encrypt", prop.ForAll(
		func(key, block []byte) bool {
			c, err := NewCipher(key)
			if err != nil {
				return false
			}

			var ct, rt [BlockSize]byte
			c.Encrypt(ct[:], block)
			c.Decrypt(rt[:], ct[:])
			return bytes.Equal(rt[:], block)
		},
		gen.SliceOfN(KeySize, gen.UInt8()),
		gen.SliceOfN(BlockSize, gen.UInt8()),
	))

	properties.Property("transpose round trips", prop.ForAll(
		func(a, b, c, d uint32) bool {
			x := [4]uint32{a, b, c, d}
			orig := x
			transpose(&x)
			inverseTranspose(&x)
			return x == orig
		},
		gen.UInt32(), gen.UInt32(), gen.UInt32(), gen.UInt32(),
	))

	properties.Property("linear transform round trips", prop.ForAll(
		func(a, b, c, d uint32) bool {
			x := [4]uint32{a, b, c, d}
			orig := x
			linear(&x)
			inverseLinear(&x)
			return x == orig
		},
		gen.UInt32(), gen.UInt32(), gen.UInt32(), gen.UInt32(),
	))

	properties.Property("every S-box round trips", prop.ForAll(
		func(box int, a, b, c, d uint32) bool {
			x := [4]uint32{a, b, c, d}
			orig := x
			applySbox(box, &x)
			applyInvSbox(box, &x)
			return x == orig
		},
		gen.IntRange(0, 7),
		gen.UInt32(), gen.UInt32(), gen.UInt32(), gen.UInt32(),
	))

	properties.TestingRun(t)
}
