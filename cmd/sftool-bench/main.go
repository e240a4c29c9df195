// main.go -- CLI benchmark tool for sftool
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
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
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/opencoff/go-utils"
	flag "github.com/opencoff/pflag"
	"github.com/sftcrypt/sftool"
)

type benchSize struct {
	name string
	size uint64
}

var defaultSizes = "4k,64k,1M,16M"

type benchResult struct {
	operation  string
	size       string
	sizeBytes  uint64
	elapsedMs  float64
	throughput float64 // MB/s, 0 if size==0
}

func main() {
	var iters, bits int
	var format string
	var opsStr string
	var help bool

	fs := flag.NewFlagSet("sftool-bench", flag.ExitOnError)
	fs.IntVarP(&iters, "iterations", "n", 3, "Number of iterations per test")
	fs.IntVarP(&bits, "bits", "b", 1024, "RSA modulus size for keygen/seal benchmarks")
	fs.StringVarP(&format, "format", "f", "table", "Output format: \"table\" or \"csv\"")
	fs.StringVarP(&opsStr, "ops", "o", "all", "Operations: keygen,encrypt,decrypt,hash or \"all\"")
	fs.BoolVarP(&help, "help", "h", false, "Show help and exit")

	fs.Parse(os.Args[1:])

	if help {
		usage(fs)
	}

	if iters < 1 {
		Die("iterations must be >= 1")
	}

	szStr := "all"
	args := fs.Args()
	if len(args) > 0 {
		szStr = args[0]
	}

	sizes := parseSizes(szStr)
	ops := parseOps(opsStr)

	kp, err := sftool.Keygen(nil, bits)
	if err != nil {
		Die("keygen: %s", err)
	}

	var results []benchResult

	if ops["keygen"] {
		fmt.Fprintf(os.Stderr, "Benchmarking Keygen (%d bits)...\n", bits)
		durations := make([]time.Duration, iters)
		for i := 0; i < iters; i++ {
			start := time.Now()
			if _, err := sftool.Keygen(nil, bits); err != nil {
				Die("Keygen: %s", err)
			}
			durations[i] = time.Since(start)
		}
		results = append(results, summarize("Keygen", benchSize{fmt.Sprintf("%db", bits), 0}, durations))
	}

	type ptEntry struct {
		bs benchSize
		pt []byte
	}
	entries := make([]ptEntry, 0, len(sizes))
	for _, sz := range sizes {
		pt := make([]byte, sz.size)
		if _, err := io.ReadFull(rand.Reader, pt); err != nil {
			Die("randgen %s: %s", sz.name, err)
		}
		entries = append(entries, ptEntry{sz, pt})
	}

	if ops["encrypt"] {
		fmt.Fprintf(os.Stderr, "Benchmarking Encrypt...\n")
		for _, e := range entries {
			durations := make([]time.Duration, iters)
			for i := 0; i < iters; i++ {
				wr := &bytes.Buffer{}
				wr.Grow(len(e.pt) + 16)
				start := time.Now()
				en, err := sftool.NewEncryptor(kp.Public(), nil)
				if err != nil {
					Die("Encrypt %s: %s", e.bs.name, err)
				}
				if err = en.Encrypt(bytes.NewReader(e.pt), wr); err != nil {
					Die("Encrypt %s: %s", e.bs.name, err)
				}
				durations[i] = time.Since(start)
				en.Close()
			}
			results = append(results, summarize("Encrypt", e.bs, durations))
		}
	}

	if ops["decrypt"] {
		fmt.Fprintf(os.Stderr, "Benchmarking Decrypt...\n")
		for _, e := range entries {
			// encrypt once to get ciphertext
			en, err := sftool.NewEncryptor(kp.Public(), nil)
			if err != nil {
				Die("Decrypt setup %s: %s", e.bs.name, err)
			}
			wr := &bytes.Buffer{}
			if err = en.Encrypt(bytes.NewReader(e.pt), wr); err != nil {
				Die("Decrypt setup %s: %s", e.bs.name, err)
			}
			ct := wr.Bytes()
			sealed := en.SealedKey()

			durations := make([]time.Duration, iters)
			for i := 0; i < iters; i++ {
				out := &bytes.Buffer{}
				out.Grow(len(e.pt))
				start := time.Now()
				de, err := sftool.NewDecryptor(kp, sealed)
				if err != nil {
					Die("Decrypt %s: %s", e.bs.name, err)
				}
				if err = de.Decrypt(bytes.NewReader(ct), out); err != nil {
					Die("Decrypt %s: %s", e.bs.name, err)
				}
				durations[i] = time.Since(start)
				de.Close()
			}
			en.Close()
			results = append(results, summarize("Decrypt", e.bs, durations))
		}
	}

	if ops["hash"] {
		fmt.Fprintf(os.Stderr, "Benchmarking Hash...\n")
		for _, e := range entries {
			durations := make([]time.Duration, iters)
			for i := 0; i < iters; i++ {
				start := time.Now()
				_ = sftool.Sum256(e.pt)
				durations[i] = time.Since(start)
			}
			results = append(results, summarize("Hash", e.bs, durations))
		}
	}

	switch format {
	case "csv":
		formatCSV(results)
	default:
		formatTable(results)
	}
}

func parseSizes(s string) []benchSize {
	if strings.ToLower(s) == "all" {
		s = defaultSizes
	}

	parts := strings.Split(s, ",")
	sizes := make([]benchSize, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) == 0 {
			continue
		}
		n, err := utils.ParseSize(p)
		if err != nil {
			Die("invalid size %q: %s", p, err)
		}
		sizes = append(sizes, benchSize{utils.HumanizeSize(n), n})
	}
	if len(sizes) == 0 {
		Die("no valid sizes specified")
	}
	return sizes
}

func parseOps(s string) map[string]bool {
	ops := make(map[string]bool)
	if strings.ToLower(s) == "all" {
		ops["keygen"] = true
		ops["encrypt"] = true
		ops["decrypt"] = true
		ops["hash"] = true
		return ops
	}

	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToLower(p))
		switch p {
		case "keygen", "encrypt", "decrypt", "hash":
			ops[p] = true
		default:
			Die("unknown operation %q; valid: keygen,encrypt,decrypt,hash,all", p)
		}
	}
	if len(ops) == 0 {
		Die("no valid operations specified")
	}
	return ops
}

func summarize(op string, bs benchSize, durations []time.Duration) benchResult {
	med := median(durations)
	ms := float64(med.Nanoseconds()) / 1e6
	var tp float64
	if bs.size > 0 && med > 0 {
		tp = float64(bs.size) / med.Seconds() / (1024 * 1024)
	}
	return benchResult{
		operation:  op,
		size:       bs.name,
		sizeBytes:  bs.size,
		elapsedMs:  ms,
		throughput: tp,
	}
}

func median(durations []time.Duration) time.Duration {
	n := len(durations)
	if n == 0 {
		return 0
	}

	sorted := make([]time.Duration, n)
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

func formatTable(results []benchResult) {
	fmt.Println()
	fmt.Println("sftool-bench: Performance Report")
	fmt.Println("================================")
	fmt.Println()
	fmt.Printf("%-10s %-10s %-10s %-10s\n", "Op", "Size", "MB/s", "ms")
	fmt.Printf("%-10s %-10s %-10s %-10s\n", "----------", "----------", "----------", "----------")

	for _, r := range results {
		tp := "N/A"
		if r.throughput > 0 {
			tp = fmt.Sprintf("%.1f", r.throughput)
		}
		fmt.Printf("%-10s %-10s %-10s %-10.2f\n", r.operation, r.size, tp, r.elapsedMs)
	}
	fmt.Println()
}

func formatCSV(results []benchResult) {
	fmt.Println("operation,size,size_bytes,elapsed_ms,throughput_mbps")
	for _, r := range results {
		fmt.Printf("%s,%s,%d,%.3f,%.2f\n",
			r.operation, r.size, r.sizeBytes, r.elapsedMs, r.throughput)
	}
}

func usage(fs *flag.FlagSet) {
	fmt.Printf(`sftool-bench - Performance benchmark tool for sftool

Usage: sftool-bench [options] [sizes]

Benchmarks keygen, hybrid encrypt/decrypt and hashing at various
input sizes using in-memory buffers. Sizes are optional and are given
as one comma separated argument; further arguments are ignored.

Options:
`)
	fs.PrintDefaults()
	fmt.Printf(`
Examples:
  sftool-bench                     # All benchmarks with default sizes
  sftool-bench -n 5 1KB,1MB        # Custom sizes, 5 iterations
  sftool-bench -o encrypt,decrypt  # Only encrypt/decrypt
`)
	os.Exit(0)
}

// Die prints an error message to stderr and exits.
func Die(f string, v ...interface{}) {
	Warn(f, v...)
	os.Exit(1)
}

// Warn prints a warning message to stderr.
func Warn(f string, v ...interface{}) {
	z := fmt.Sprintf("sftool-bench: %s", f)
	s := fmt.Sprintf(z, v...)
	if n := len(s); s[n-1] != '\n' {
		s += "\n"
	}
	os.Stderr.WriteString(s)
	os.Stderr.Sync()
}

// vim: noexpandtab:ts=8:sw=8:tw=92:
