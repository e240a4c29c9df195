// utils_test.go -- Test harness utilities
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
	"crypto/subtle"
	"fmt"
	mrand "math/rand"
	"runtime"
	"testing"
)

func newAsserter(t *testing.T) func(cond bool, msg string, args ...interface{}) {
	return func(cond bool, msg string, args ...interface{}) {
		if cond {
			return
		}

		_, file, line, ok := runtime.Caller(1)
		if !ok {
			file = "???"
			line = 0
		}

		s := fmt.Sprintf(msg, args...)
		t.Fatalf("%s: %d: Assertion failed: %s\n", file, line, s)
	}
}

// Return true if two byte arrays are equal
func byteEq(x, y []byte) bool {
	return subtle.ConstantTimeCompare(x, y) == 1
}

// seededRand returns a deterministic byte stream for reproducible key
// generation in tests.
func seededRand(seed int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed))
}

// testKeyCache holds one shared small RSA key per test binary run;
// prime search at 512 bits is slow enough that we don't want every
// test paying for it.
var testKeyCache *Key

func testKey(t *testing.T) *Key {
	t.Helper()

	if testKeyCache == nil {
		k, err := Keygen(seededRand(97), 512)
		if err != nil {
			t.Fatalf("can't generate test key: %s", err)
		}
		testKeyCache = k
	}
	return testKeyCache
}
