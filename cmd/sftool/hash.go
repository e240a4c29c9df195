// hash.go -- SHA-256 digest of files
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

	flag "github.com/opencoff/pflag"
	"github.com/sftcrypt/sftool"
)

func hashFiles(args []string) {
	var help bool

	fs := flag.NewFlagSet("hash", flag.ExitOnError)
	fs.BoolVarP(&help, "help", "h", false, "Show this help and exit")

	fs.Parse(args)

	if help {
		fs.SetOutput(os.Stdout)
		fmt.Printf(`%s hash: Print the SHA-256 digest of one or more files.

Usage: %s hash file [file ..]

Options:
`, Z, Z)
		fs.PrintDefaults()
		os.Exit(0)
	}

	args = fs.Args()
	if len(args) < 1 {
		Die("Insufficient args. Try '%s hash -h'", Z)
	}

	errs := 0
	for _, fn := range args {
		sum, err := sftool.FileCksum(fn)
		if err != nil {
			Warn("%s", err)
			errs += 1
			continue
		}
		fmt.Printf("%x  %s\n", sum, fn)
	}

	if errs > 0 {
		Exit(1)
	}
}
