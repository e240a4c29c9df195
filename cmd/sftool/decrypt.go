// decrypt.go -- Decrypt command handling
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
	"io"
	"os"

	"github.com/opencoff/go-fio"
	flag "github.com/opencoff/pflag"
	"github.com/sftcrypt/sftool"
	"github.com/sirupsen/logrus"
)

func decrypt(args []string) {
	var help, force, nopw bool
	var outfile, keyfile, envpw string

	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	fs.BoolVarP(&help, "help", "h", false, "Show this help and exit")
	fs.StringVarP(&outfile, "outfile", "o", "", "Write the plaintext to file `F`")
	fs.StringVarP(&keyfile, "keyfile", "k", "", "Read the sealed session key from file `F`")
	fs.BoolVarP(&nopw, "no-password", "", false, "Don't ask for a password for the private key")
	fs.StringVarP(&envpw, "env-password", "E", "", "Use passphrase from environment variable `E`")
	fs.BoolVarP(&force, "overwrite", "", false, "Overwrite the output file if it exists")

	fs.Parse(args)

	if help {
		fs.SetOutput(os.Stdout)
		fmt.Printf(`%s decrypt: Decrypt a file.

Usage: %s decrypt [options] key infile|-

KEY is the private key file. INFILE is the encrypted input; '-' reads
from STDIN. The sealed session key is read from INFILE.skey unless
'-k' names a different file ('-k' is required when reading STDIN).
Unless '-o' is used, the plaintext goes to STDOUT.

Options:
`, Z, Z)
		fs.PrintDefaults()
		os.Exit(0)
	}

	args = fs.Args()
	if len(args) < 2 {
		Die("Insufficient args. Try '%s decrypt -h'", Z)
	}

	skn, infile := args[0], args[1]

	if len(keyfile) == 0 {
		if infile == "-" {
			Die("reading ciphertext from STDIN needs an explicit '-k' for the sealed key")
		}
		keyfile = infile + ".skey"
	}

	getpw := maybeGetPw(nopw, envpw, false)
	sk, err := sftool.ReadKey(skn, getpw)
	if err != nil {
		Die("%s: %s", skn, err)
	}
	defer sk.Wipe()

	if !sk.IsPrivate() {
		Die("%s: not a private key", skn)
	}

	sealed, err := os.ReadFile(keyfile)
	if err != nil {
		Die("%s: %s", keyfile, err)
	}

	var infd io.Reader = os.Stdin
	var outfd io.Writer = os.Stdout
	var inf *os.File

	if infile != "-" {
		inf = mustOpen(infile, os.O_RDONLY)
		defer inf.Close()

		infd = inf
	}

	if len(outfile) > 0 && outfile != "-" {
		var mode os.FileMode = 0600

		if inf != nil {
			var same bool
			if same, mode = sameFile(inf, outfile); same {
				Die("won't create output file: same as input file!")
			}
		}

		var opts uint32
		if force {
			opts |= fio.OPT_OVERWRITE
		}
		sf, err := fio.NewSafeFile(outfile, opts, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
		if err != nil {
			Die("%s", err)
		}

		AtExit(sf.Abort)
		defer sf.Abort()
		outfd = sf
	}

	d, err := sftool.NewDecryptor(sk, string(sealed))
	if err != nil {
		Die("%s", err)
	}
	defer d.Close()

	logrus.Debugf("session key unsealed; decrypting %s", infile)

	if err = d.Decrypt(infd, outfd); err != nil {
		Die("%s", err)
	}

	if sf, ok := outfd.(*fio.SafeFile); ok {
		if err = sf.Close(); err != nil {
			Die("%s", err)
		}
	}
}
