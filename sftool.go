// sftool.go -- package documentation
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

// Package sftool implements the cryptographic core of a hybrid file
// encryption tool: RSA seals a per-file random session key, and the
// Serpent block cipher encrypts the file content under that key.
// SHA-256 provides a content integrity digest.
//
// The ciphertext file format is raw concatenated 16-byte cipher
// blocks (ECB with PKCS#7 padding); the sealed session key is a
// single ASCII decimal token; RSA key files are decimal integers one
// per line (n, e, d). See the cmd/sftool CLI for the file-level
// workflow.
//
// This is a study implementation of the classic primitives. It has no
// authentication, no IVs and no constant-time guarantees; do not use
// it to protect data from a capable adversary.
package sftool

// Version of the library and tool
const Version = "1.0.0"
