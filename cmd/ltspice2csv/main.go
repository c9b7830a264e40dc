// Command ltspice2csv converts LTSpice AC-analysis text exports into the
// three-column frequency-response CSV format.
//
// Usage:
//
//	ltspice2csv [flags] file.txt [file.txt ...]
//
// Each input yields one output file named ltspice_<stem>.csv in the
// output directory. A file that cannot be converted is reported and
// skipped; the batch continues.
//
// Examples:
//
//	ltspice2csv plots/LowPass_order1_1000Hz.txt
//	ltspice2csv -outdir frequency_responses plots/*.txt
//	ltspice2csv -column "V(out)" sweep.txt
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fergarciadlc/wdf-sallenkey/internal/ltspice"
	"github.com/fergarciadlc/wdf-sallenkey/measure/response"
)

func main() {
	outDir := flag.String("outdir", "frequency_responses", "output directory for CSV files")
	column := flag.String("column", ltspice.DefaultVoltageColumn, "voltage column to extract")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ltspice2csv [flags] file.txt [file.txt ...]\n\n")
		fmt.Fprintf(os.Stderr, "Converts LTSpice frequency-response exports to CSV.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	files, err := expandArgs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "error: create output directory: %v\n", err)
		os.Exit(1)
	}

	processed := 0

	for _, file := range files {
		if err := convert(file, *outDir, *column); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", file, err)
			continue
		}

		processed++
	}

	fmt.Printf("processed %d of %d files\n", processed, len(files))

	if processed == 0 {
		os.Exit(1)
	}
}

// expandArgs resolves glob patterns that the shell did not expand.
func expandArgs(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			files = append(files, arg)
			continue
		}

		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %v", arg, err)
		}

		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "warning: %s: no matches\n", arg)
			continue
		}

		files = append(files, matches...)
	}

	return files, nil
}

func convert(file, outDir, column string) error {
	in, err := os.Open(file)
	if err != nil {
		return err
	}
	defer in.Close()

	res, err := ltspice.Parse(in, column)
	if err != nil {
		return err
	}

	if res.Malformed > 0 {
		fmt.Fprintf(os.Stderr, "warning: %s: %d malformed rows kept as NaN\n", file, res.Malformed)
	}

	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	outPath := filepath.Join(outDir, "ltspice_"+stem+".csv")

	if err := response.WriteCSVFile(outPath, res.Curve); err != nil {
		return err
	}

	fmt.Printf("%s -> %s (%d points, column %s)\n", file, outPath, res.Curve.Len(), res.Column)

	return nil
}
