// errors.go - list of all exportable errors in this module
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
//

package sftool

import (
	"errors"
)

var (
	ErrKeyBits       = errors.New("keygen: modulus size too small (min 256 bits)")
	ErrMsgRange      = errors.New("rsa: message not in [0, n)")
	ErrNoPrivateKey  = errors.New("rsa: key has no private exponent")
	ErrNoInverse     = errors.New("keygen: public exponent has no inverse mod phi")
	ErrSmallModulus  = errors.New("seal: RSA modulus too small for a session key")
	ErrBadCiphertext = errors.New("decrypt: ciphertext length not a positive multiple of 16")
	ErrBadPadding    = errors.New("decrypt: invalid padding")
	ErrBadKeyFile    = errors.New("keyfile: malformed key file")
	ErrBadPassword   = errors.New("keyfile: wrong passphrase")
)
