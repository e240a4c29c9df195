// selftest.go -- cipher component diagnostics
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
	"crypto/rand"
	"fmt"
	"io"
	"os"

	flag "github.com/opencoff/pflag"
	"github.com/sftcrypt/sftool"
	"github.com/sftcrypt/sftool/internal/serpent"
)

func selftest(args []string) {
	var help bool

	fs := flag.NewFlagSet("selftest", flag.ExitOnError)
	fs.BoolVarP(&help, "help", "h", false, "Show this help and exit")

	fs.Parse(args)

	if help {
		fs.SetOutput(os.Stdout)
		fmt.Printf(`%s selftest: Run the cipher component diagnostics.

Verifies the Serpent transpose, linear transform and S-box pairs
against their inverses and runs a keyed round trip through the file
mode.

Options:
`, Z)
		fs.PrintDefaults()
		os.Exit(0)
	}

	if err := serpent.SelfTest(); err != nil {
		Die("%s", err)
	}
	fmt.Printf("%s: serpent components OK\n", Z)

	blk, err := serpent.NewCipher(randKey())
	if err != nil {
		Die("%s", err)
	}
	defer blk.Reset()

	msg := []byte("sftool file mode selftest vector")
	if !sftool.EncryptRoundTrips(blk, msg) {
		Die("file mode round trip failed")
	}
	fmt.Printf("%s: file mode OK\n", Z)
}

func randKey() []byte {
	b := make([]byte, serpent.KeySize)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		Die("can't read %d random bytes: %s", len(b), err)
	}
	return b
}
