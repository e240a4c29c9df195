// iomisc.go -- misc i/o functions
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
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/opencoff/go-fio"
	"github.com/opencoff/go-mmap"
)

// Simple function to reliably write data to a file.
// Does MORE than os.WriteFile() - in that it doesn't trash the
// existing file with an incomplete write.
func WriteFile(fn string, b []byte, ovwrite bool, mode os.FileMode) error {
	var opts uint32
	if ovwrite {
		opts |= fio.OPT_OVERWRITE
	}
	sf, err := fio.NewSafeFile(fn, opts, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer sf.Abort()
	if _, err = sf.Write(b); err != nil {
		return err
	}

	return sf.Close()
}

// Sum256 returns the SHA-256 digest of a byte buffer.
func Sum256(b []byte) []byte {
	z := sha256.Sum256(b)
	return z[:]
}

// FileCksum returns the SHA-256 digest of the raw content of file
// 'fn', hashed through a mmap'd view of the file.
func FileCksum(fn string) ([]byte, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return nil, fmt.Errorf("can't open %s: %w", fn, err)
	}

	defer fd.Close()

	h := sha256.New()

	_, err = mmap.Reader(fd, func(b []byte) error {
		h.Write(b)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return h.Sum(nil)[:], nil
}
