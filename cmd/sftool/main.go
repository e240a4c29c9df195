// main.go -- subcommand dispatch for sftool
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

	"github.com/opencoff/go-utils"
	flag "github.com/opencoff/pflag"
	"github.com/sftcrypt/sftool"
	"github.com/sirupsen/logrus"
)

// Z is the program name as invoked
var Z string = path.Base(os.Args[0])

func main() {
	var ver, help, debug bool

	fs := flag.NewFlagSet(Z, flag.ExitOnError)
	fs.SetInterspersed(false)
	fs.BoolVarP(&ver, "version", "v", false, "Show version info and exit")
	fs.BoolVarP(&help, "help", "h", false, "Show help and exit")
	fs.BoolVarP(&debug, "debug", "", false, "Enable debug logging on stderr")

	fs.Parse(os.Args[1:])

	if ver {
		fmt.Printf("%s - %s [%s]\n", Z, sftool.Version, buildRevision())
		Exit(0)
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	args := fs.Args()
	if help || len(args) < 1 {
		usage(help)
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "generate", "gen", "g":
		gen(args)

	case "encrypt", "e":
		encrypt(args)

	case "decrypt", "d":
		decrypt(args)

	case "hash":
		hashFiles(args)

	case "selftest":
		selftest(args)

	case "help":
		usage(true)

	default:
		Die("unknown command %q. Try '%s --help'", cmd, Z)
	}

	Exit(0)
}

func usage(ok bool) {
	fmt.Printf(`%s: encrypt files with Serpent under an RSA sealed session key.

Usage: %s [global-options] command [options] [args ..]

Commands:
    generate, gen  Generate a new RSA keypair
    encrypt, e     Encrypt a file for the holder of a public key
    decrypt, d     Decrypt a file with a private key and its sealed session key
    hash           Print the SHA-256 digest of one or more files
    selftest       Run the cipher component diagnostics

Run '%s command -h' for per command options.

Global options:
    -h, --help     Show this help and exit
    -v, --version  Show version info and exit
        --debug    Enable debug logging on stderr
`, Z, Z, Z)

	if ok {
		Exit(0)
	}
	Exit(1)
}

// maybeGetPw builds the passphrase callback for reading/writing
// private keys: nil when passphrases are disabled, an env lookup when
// 'envpw' names a variable, an interactive prompt otherwise.
func maybeGetPw(nopw bool, envpw string, confirm bool) func() ([]byte, error) {
	switch {
	case nopw:
		return nil

	case len(envpw) > 0:
		return func() ([]byte, error) {
			return []byte(os.Getenv(envpw)), nil
		}

	default:
		return func() ([]byte, error) {
			pw, err := utils.Askpass("Enter passphrase for private key", confirm)
			if err != nil {
				return nil, err
			}
			return []byte(pw), nil
		}
	}
}

// Return true if file 'fn' exists; false otherwise
func exists(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil
}

func mustOpen(fn string, flag int) *os.File {
	fdk, err := os.OpenFile(fn, flag, 0600)
	if err != nil {
		Die("can't open file %s: %s", fn, err)
	}
	return fdk
}

// vim: ft=go:sw=8:ts=8:noexpandtab:tw=98:
