// selftest.go -- component diagnostics for the cipher internals
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
	"fmt"
)

// reference vector for the involution checks
var diagVector = [4]uint32{0x11223344, 0x55667788, 0x99AABBCC, 0xDDEEFF00}

// SelfTest verifies the cipher's internal components: the transpose
// pair, the linear transform pair, all eight S-box pairs, and a keyed
// single-block round trip. It returns nil when every check passes.
func SelfTest() error {
	x := diagVector
	transpose(&x)
	inverseTranspose(&x)
	if x != diagVector {
		return fmt.Errorf("serpent: selftest: transpose does not invert")
	}

	x = diagVector
	linear(&x)
	inverseLinear(&x)
	if x != diagVector {
		return fmt.Errorf("serpent: selftest: linear transform does not invert")
	}

	for i := 0; i < 8; i++ {
		x = diagVector
		applySbox(i, &x)
		applyInvSbox(i, &x)
		if x != diagVector {
			return fmt.Errorf("serpent: selftest: S-box %d does not invert", i)
		}
	}

	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i * 7)
	}

	c, err := NewCipher(key[:])
	if err != nil {
		return fmt.Errorf("serpent: selftest: %w", err)
	}
	defer c.Reset()

	var pt, ct, rt [BlockSize]byte
	copy(pt[:], "serpent selftest")

	c.Encrypt(ct[:], pt[:])
	c.Decrypt(rt[:], ct[:])

	if !bytes.Equal(pt[:], rt[:]) {
		return fmt.Errorf("serpent: selftest: block round trip failed")
	}
	if bytes.Equal(pt[:], ct[:]) {
		return fmt.Errorf("serpent: selftest: encryption is the identity")
	}

	return nil
}
