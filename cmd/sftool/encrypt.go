// encrypt.go -- Encrypt command handling
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

func encrypt(args []string) {
	var help, force bool
	var outfile, keyfile string

	fs := flag.NewFlagSet("encrypt", flag.ExitOnError)
	fs.BoolVarP(&help, "help", "h", false, "Show this help and exit")
	fs.StringVarP(&outfile, "outfile", "o", "", "Write the ciphertext to file `F`")
	fs.StringVarP(&keyfile, "keyfile", "k", "", "Write the sealed session key to file `F`")
	fs.BoolVarP(&force, "overwrite", "", false, "Overwrite output files if they exist")

	fs.Parse(args)

	if help {
		fs.SetOutput(os.Stdout)
		fmt.Printf(`%s encrypt: Encrypt a file to the holder of an RSA public key.

Usage: %s encrypt [options] to.pub infile|-

TO.PUB is the recipient's public key file. INFILE is the input file;
'-' reads from STDIN. Unless '-o' is used, the ciphertext goes to
STDOUT. The sealed session key is written next to the ciphertext as
OUTFILE.skey unless '-k' names a different file ('-k' is required
when the ciphertext goes to STDOUT).

Options:
`, Z, Z)
		fs.PrintDefaults()
		os.Exit(0)
	}

	args = fs.Args()
	if len(args) < 2 {
		Die("Insufficient args. Try '%s encrypt -h'", Z)
	}

	pkn, infile := args[0], args[1]

	if len(keyfile) == 0 {
		if len(outfile) == 0 || outfile == "-" {
			Die("writing ciphertext to STDOUT needs an explicit '-k' for the sealed key")
		}
		keyfile = outfile + ".skey"
	}

	pk, err := sftool.ReadPublicKey(pkn)
	if err != nil {
		Die("%s", err)
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
		var mode os.FileMode = 0600 // conservative output mode

		// make sure infile and outfile are not the same underlying file.
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

	en, err := sftool.NewEncryptor(pk, nil)
	if err != nil {
		Die("%s", err)
	}
	defer en.Close()

	logrus.Debugf("sealed session key: %d decimal digits", len(en.SealedKey()))

	if err = sftool.WriteFile(keyfile, []byte(en.SealedKey()), force, 0644); err != nil {
		Die("%s: %s", keyfile, err)
	}

	if err = en.Encrypt(infd, outfd); err != nil {
		Die("%s", err)
	}

	if sf, ok := outfd.(*fio.SafeFile); ok {
		if err = sf.Close(); err != nil {
			Die("%s", err)
		}
	}
}

// Return true if the file 'infd' and outfn are the same underlying file
func sameFile(infd *os.File, outfn string) (bool, os.FileMode) {
	ist, err := infd.Stat()
	if err != nil {
		Die("can't stat %s: %s", infd.Name(), err)
	}

	ost, err := os.Stat(outfn)
	if err != nil {
		if os.IsNotExist(err) {
			return false, ist.Mode()
		}
		Die("can't stat %s: %s", outfn, err)
	}

	if os.SameFile(ist, ost) {
		return true, 0
	}

	return false, ist.Mode()
}
