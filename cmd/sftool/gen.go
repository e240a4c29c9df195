// gen.go -- generate keys
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

package main

import (
	"fmt"
	"os"
	"path"
	"time"

	flag "github.com/opencoff/pflag"
	"github.com/sftcrypt/sftool"
	"github.com/sirupsen/logrus"
)

// Run the generate command
func gen(args []string) {
	var nopw, help, force bool
	var comment string
	var envpw string
	var bits int

	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	fs.BoolVarP(&help, "help", "h", false, "Show this help and exit")
	fs.IntVarP(&bits, "bits", "b", 1024, "Generate an RSA modulus of `B` bits")
	fs.BoolVarP(&nopw, "no-password", "", false, "Don't ask for a password for the private key")
	fs.StringVarP(&comment, "comment", "c", "", "Use `C` as the text comment for the private key")
	fs.StringVarP(&envpw, "env-password", "E", "", "Use passphrase from environment variable `E`")
	fs.BoolVarP(&force, "overwrite", "", false, "Overwrite the output file if it exists")

	fs.Parse(args)

	if help {
		fs.SetOutput(os.Stdout)
		fmt.Printf(`%s generate|gen|g [options] file-prefix

Generate a new RSA keypair and write the private key to
FILE-PREFIX.key and the public key to FILE-PREFIX.pub.

The public key file holds the decimal integers n and e, one per
line. The private key file additionally holds d; with a passphrase it
is sealed inside an encrypted envelope instead.

Options:
`, Z)
		fs.PrintDefaults()
		os.Exit(0)
	}

	args = fs.Args()
	if len(args) < 1 {
		Die("Insufficient arguments to 'generate'. Try '%s generate -h' ..", Z)
	}

	bn := args[0]

	pkn := fmt.Sprintf("%s.pub", path.Clean(bn))
	skn := fmt.Sprintf("%s.key", path.Clean(bn))

	if !force {
		if exists(pkn) || exists(skn) {
			Die("Public/Private key files (%s, %s) exist. won't overwrite!", skn, pkn)
		}
	}

	start := time.Now()
	kp, err := sftool.Keygen(nil, bits)
	if err != nil {
		Die("%s", err)
	}
	logrus.Debugf("generated %d bit RSA key in %s", bits, time.Since(start))

	var skb []byte

	getpw := maybeGetPw(nopw, envpw, true)
	if getpw != nil {
		pw, err := getpw()
		if err != nil {
			Die("%s", err)
		}
		skb, err = kp.MarshalEncrypted(comment, pw)
		if err != nil {
			Die("%s", err)
		}
	} else {
		skb = kp.Marshal()
	}

	pkb := kp.Public().Marshal()

	// Now write the files out
	if err = sftool.WriteFile(skn, skb, force, 0600); err != nil {
		Die("%s: %s", skn, err)
	}
	if err = sftool.WriteFile(pkn, pkb, force, 0644); err != nil {
		Die("%s: %s", pkn, err)
	}

	kp.Wipe()
}
