// keys.go -- RSA key file I/O
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
//   - plain key files: ASCII decimal integers, one per line, in the
//     order n, e, d (private) or n, e (public). The parser accepts
//     any whitespace between tokens.
//   - passphrase protected private keys: the plain key text sealed
//     with an scrypt derived AES-256-GCM key inside a small YAML
//     envelope.

package sftool

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/scrypt"
	"gopkg.in/yaml.v2"

	"github.com/sftcrypt/sftool/internal/bigx"
)

// constants we use in this module
const (
	// Scrypt parameters
	_N int = 1 << 19
	_r int = 8
	_p int = 1

	// Algorithm tag in the encrypted private key
	sk_algo = "scrypt-aes256gcm"
)

// Encrypted private key envelope
type serializedPrivKey struct {
	Comment string `yaml:"comment,omitempty"`

	// Encrypted key text
	Esk  string `yaml:"esk"`
	Salt string `yaml:"salt,omitempty"`

	// Algorithm used for KDF and wrap
	Algo string `yaml:"algo,omitempty"`

	// These are params for scrypt.Key()
	// CPU Cost parameter; must be a power of 2
	N int `yaml:"Z,flow,omitempty"`

	// r * p should be less than 2^30
	R int `yaml:"r,flow,omitempty"`
	P int `yaml:"p,flow,omitempty"`
}

// Marshal renders the key as decimal text: n, e and (for a private
// key) d, one per line.
func (k *Key) Marshal() []byte {
	var sb strings.Builder

	sb.WriteString(bigx.FormatDecimal(k.N))
	sb.WriteByte('\n')
	sb.WriteString(bigx.FormatDecimal(k.E))
	sb.WriteByte('\n')
	if k.D != nil {
		sb.WriteString(bigx.FormatDecimal(k.D))
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// ParseKey parses decimal key text: two tokens make a public key,
// three a private key. Tokens may be separated by any whitespace.
func ParseKey(b []byte) (*Key, error) {
	toks := strings.Fields(string(b))
	if len(toks) < 2 || len(toks) > 3 {
		return nil, fmt.Errorf("keyfile: want 2 or 3 integers, have %d: %w", len(toks), ErrBadKeyFile)
	}

	k := &Key{}
	for i, t := range toks {
		v, err := bigx.ParseDecimal(t)
		if err != nil {
			return nil, fmt.Errorf("keyfile: token %d: %w", i, ErrBadKeyFile)
		}
		switch i {
		case 0:
			k.N = v
		case 1:
			k.E = v
		case 2:
			k.D = v
		}
	}

	if k.N.Sign() <= 0 || k.E.Sign() <= 0 {
		return nil, fmt.Errorf("keyfile: nonpositive modulus or exponent: %w", ErrBadKeyFile)
	}
	return k, nil
}

// ReadKey reads a key file; if the file is a passphrase protected
// envelope, getpw is called for the passphrase.
func ReadKey(fn string, getpw func() ([]byte, error)) (*Key, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	return ParseKeyAny(b, getpw)
}

// ReadPublicKey reads a plain (unencrypted) key file and returns only
// its public portion.
func ReadPublicKey(fn string) (*Key, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}

	k, err := ParseKey(b)
	if err != nil {
		return nil, err
	}
	return k.Public(), nil
}

// ParseKeyAny parses either a plain decimal key or an encrypted
// envelope, detected by content.
func ParseKeyAny(b []byte, getpw func() ([]byte, error)) (*Key, error) {
	if !strings.Contains(string(b), "esk:") {
		return ParseKey(b)
	}

	var pw []byte
	if getpw != nil {
		var err error
		if pw, err = getpw(); err != nil {
			return nil, err
		}
	}
	return parseEncryptedKey(b, pw)
}

// MarshalEncrypted seals the private key text under a passphrase:
// sha512(pw) -> scrypt -> AES-256-GCM, with the salt doubling as the
// GCM nonce prefix (a fresh salt is drawn per marshal).
func (k *Key) MarshalEncrypted(comment string, pw []byte) ([]byte, error) {
	if k.D == nil {
		return nil, ErrNoPrivateKey
	}

	// We take short passphrases and extend them
	pass := sha512.Sum512(pw)
	salt := randBuf(32)

	// "32" == Length of AES-256 key
	key, err := scrypt.Key(pass[:], salt, _N, _r, _p, 32)
	if err != nil {
		return nil, fmt.Errorf("marshal: can't derive scrypt key: %w", err)
	}

	aes, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	ae, err := cipher.NewGCM(aes)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	kt := k.Marshal()
	buf := make([]byte, ae.Overhead()+len(kt))
	esk := ae.Seal(buf[:0], salt[:ae.NonceSize()], kt, nil)

	enc := base64.StdEncoding.EncodeToString

	ssk := serializedPrivKey{
		Comment: comment,
		Esk:     enc(esk),
		Salt:    enc(salt),
		Algo:    sk_algo,
		N:       _N,
		R:       _r,
		P:       _p,
	}

	// The scrypt parameters are not separately authenticated: wrong
	// params derive a wrong key and GCM open fails.

	return yaml.Marshal(&ssk)
}

func parseEncryptedKey(b, pw []byte) (*Key, error) {
	var ssk serializedPrivKey

	if err := yaml.Unmarshal(b, &ssk); err != nil {
		return nil, fmt.Errorf("keyfile: can't parse YAML: %w", err)
	}

	if len(ssk.Salt) == 0 || len(ssk.Esk) == 0 {
		return nil, fmt.Errorf("keyfile: incomplete envelope: %w", ErrBadKeyFile)
	}

	if ssk.Algo != sk_algo {
		return nil, fmt.Errorf("keyfile: unknown algo %q: %w", ssk.Algo, ErrBadKeyFile)
	}

	b64 := base64.StdEncoding.DecodeString

	salt, err := b64(ssk.Salt)
	if err != nil {
		return nil, fmt.Errorf("keyfile: can't decode salt: %w", err)
	}

	esk, err := b64(ssk.Esk)
	if err != nil {
		return nil, fmt.Errorf("keyfile: can't decode key: %w", err)
	}

	pass := sha512.Sum512(pw)
	key, err := scrypt.Key(pass[:], salt, ssk.N, ssk.R, ssk.P, 32)
	if err != nil {
		return nil, fmt.Errorf("keyfile: can't derive key: %w", err)
	}

	aes, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("keyfile: %w", err)
	}

	ae, err := cipher.NewGCM(aes)
	if err != nil {
		return nil, fmt.Errorf("keyfile: %w", err)
	}

	kt, err := ae.Open(nil, salt[:ae.NonceSize()], esk, nil)
	if err != nil {
		return nil, ErrBadPassword
	}

	return ParseKey(kt)
}
