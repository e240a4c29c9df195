// crypt.go -- ECB file mode with PKCS#7 padding
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

// Implementation Notes for the file mode:
//
// The output is raw concatenated ciphertext blocks: no header, no
// magic, no IV. Each 16-byte block is encrypted independently, so
// identical plaintext blocks yield identical ciphertext blocks; the
// caller decides whether that leakage is acceptable.
//
// PKCS#7 padding is always applied: between 1 and 16 bytes, a full
// extra block when the input is already block aligned. Only the final
// pad byte is validated on decryption (matching the peer
// implementation); the pad bytes themselves are not compared.
//
// Encryption streams chunk by chunk and may leave a successful prefix
// behind on a late I/O error. Decryption buffers the whole plaintext
// and validates padding before writing a single byte.

package sftool

import (
	"bytes"
	"crypto/cipher"
	"fmt"
	"io"
)

// I/O chunk for streaming encryption; a multiple of the block size.
const cryptChunk = 64 * 1024

// EncryptStream encrypts everything read from rd under blk (a
// 16-byte-block cipher) and writes the padded ciphertext to wr.
func EncryptStream(blk cipher.Block, rd io.Reader, wr io.Writer) error {
	bs := blk.BlockSize()
	buf := make([]byte, cryptChunk+bs)

	var eof bool
	for !eof {
		n, err := io.ReadFull(rd, buf[:cryptChunk])
		switch err {
		case nil:
		case io.EOF, io.ErrUnexpectedEOF, io.ErrClosedPipe:
			eof = true
		default:
			return fmt.Errorf("encrypt: I/O read error: %w", err)
		}

		if eof {
			pad := bs - n%bs
			for i := 0; i < pad; i++ {
				buf[n+i] = byte(pad)
			}
			n += pad
		}

		chunk := buf[:n]
		for i := 0; i < n; i += bs {
			blk.Encrypt(chunk[i:], chunk[i:])
		}

		if err := fullwrite(chunk, wr); err != nil {
			return fmt.Errorf("encrypt: %w", err)
		}
	}

	return nil
}

// DecryptStream decrypts everything read from rd and writes the
// unpadded plaintext to wr. Nothing is written unless the whole
// input decrypts and the padding validates.
func DecryptStream(blk cipher.Block, rd io.Reader, wr io.Writer) error {
	ct, err := io.ReadAll(rd)
	if err != nil {
		return fmt.Errorf("decrypt: I/O read error: %w", err)
	}

	pt, err := DecryptBuffer(blk, ct)
	if err != nil {
		return err
	}

	if err := fullwrite(pt, wr); err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}
	return nil
}

// EncryptBuffer encrypts pt and returns the padded ciphertext; the
// result is always (len(pt)/bs + 1) * bs bytes, so a block aligned
// input gains one full block of padding.
func EncryptBuffer(blk cipher.Block, pt []byte) []byte {
	bs := blk.BlockSize()
	pad := bs - len(pt)%bs

	out := make([]byte, len(pt)+pad)
	copy(out, pt)
	for i := len(pt); i < len(out); i++ {
		out[i] = byte(pad)
	}

	for i := 0; i < len(out); i += bs {
		blk.Encrypt(out[i:], out[i:])
	}
	return out
}

// DecryptBuffer decrypts ct and strips the padding. The ciphertext
// must be a nonzero multiple of the block size (ErrBadCiphertext) and
// must end in a valid pad byte (ErrBadPadding).
func DecryptBuffer(blk cipher.Block, ct []byte) ([]byte, error) {
	bs := blk.BlockSize()
	if len(ct) == 0 || len(ct)%bs != 0 {
		return nil, ErrBadCiphertext
	}

	pt := make([]byte, len(ct))
	for i := 0; i < len(ct); i += bs {
		blk.Decrypt(pt[i:], ct[i:])
	}

	pad := int(pt[len(pt)-1])
	if pad < 1 || pad > bs || pad > len(pt) {
		return nil, ErrBadPadding
	}
	return pt[:len(pt)-pad], nil
}

// EncryptRoundTrips reports whether pt survives an encrypt/decrypt
// round trip under blk; used by diagnostics.
func EncryptRoundTrips(blk cipher.Block, pt []byte) bool {
	rt, err := DecryptBuffer(blk, EncryptBuffer(blk, pt))
	return err == nil && bytes.Equal(rt, pt)
}

// Write _all_ bytes of buffer 'buf'
func fullwrite(buf []byte, wr io.Writer) error {
	n := len(buf)

	for n > 0 {
		m, err := wr.Write(buf)
		if err != nil {
			return err
		}

		n -= m
		buf = buf[m:]
	}
	return nil
}
