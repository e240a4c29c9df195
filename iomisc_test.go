// iomisc_test.go -- Test harness for digest and file helpers
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
	"encoding/hex"
	"path"
	"testing"
)

// FIPS 180-4 test vector
func TestSum256KnownAnswer(t *testing.T) {
	assert := newAsserter(t)

	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	have := hex.EncodeToString(Sum256([]byte("abc")))
	assert(have == want, "sha256(abc): exp %s, saw %s", want, have)

	empty := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	have = hex.EncodeToString(Sum256(nil))
	assert(have == empty, "sha256(): exp %s, saw %s", empty, have)
}

func TestFileCksum(t *testing.T) {
	assert := newAsserter(t)

	dn := t.TempDir()
	fn := path.Join(dn, "blob.dat")

	buf := make([]byte, 128*1024+13)
	seededRand(8).Read(buf)

	err := WriteFile(fn, buf, false, 0600)
	assert(err == nil, "write fail: %s", err)

	sum, err := FileCksum(fn)
	assert(err == nil, "cksum fail: %s", err)
	assert(byteEq(sum, Sum256(buf)), "mmap digest differs from buffer digest")

	_, err = FileCksum(path.Join(dn, "nonesuch"))
	assert(err != nil, "cksum of missing file worked?")
}

func TestWriteFileNoClobber(t *testing.T) {
	assert := newAsserter(t)

	dn := t.TempDir()
	fn := path.Join(dn, "out.bin")

	err := WriteFile(fn, []byte("one"), false, 0600)
	assert(err == nil, "first write fail: %s", err)

	err = WriteFile(fn, []byte("two"), false, 0600)
	assert(err != nil, "clobbered an existing file")

	err = WriteFile(fn, []byte("two"), true, 0600)
	assert(err == nil, "overwrite fail: %s", err)
}
