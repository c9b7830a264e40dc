// Command compare-responses computes agreement metrics between
// frequency-response CSV files from different filter implementations.
//
// Usage:
//
//	compare-responses [flags] impl=file.csv [impl=file.csv ...]
//
// Implementations are named go-wdf, chowdsp, pywdf or ltspice. By default
// every curve is compared against the reference implementation
// (go-wdf unless overridden); -pairwise compares every unordered pair.
//
// Examples:
//
//	compare-responses go-wdf=go_LowPass_order1_1000Hz.csv ltspice=ltspice_LowPass_order1_1000Hz.csv
//	compare-responses -mode exact go-wdf=a.csv pywdf=b.csv
//	compare-responses -pairwise go-wdf=a.csv pywdf=b.csv ltspice=c.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fergarciadlc/wdf-sallenkey/measure/compare"
	"github.com/fergarciadlc/wdf-sallenkey/measure/response"
)

func main() {
	reference := flag.String("reference", compare.GoWDF.Name(), "reference implementation name")
	mode := flag.String("mode", "interp", "alignment mode: interp or exact")
	pairwise := flag.Bool("pairwise", false, "compare every unordered pair instead of against the reference")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: compare-responses [flags] impl=file.csv [impl=file.csv ...]\n\n")
		fmt.Fprintf(os.Stderr, "Known implementations:")

		for _, impl := range compare.Implementations() {
			fmt.Fprintf(os.Stderr, " %s", impl.Name())
		}

		fmt.Fprintf(os.Stderr, "\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*reference, *mode, *pairwise, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(reference, modeName string, pairwise bool, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("need at least two impl=file arguments")
	}

	var mode compare.Mode

	switch modeName {
	case "interp":
		mode = compare.ModeInterpolated
	case "exact":
		mode = compare.ModeExactGrid
	default:
		return fmt.Errorf("unknown mode %q (use interp or exact)", modeName)
	}

	ref, ok := compare.ParseImplementation(reference)
	if !ok {
		return fmt.Errorf("unknown reference implementation %q", reference)
	}

	curves := make(map[compare.Implementation]*response.Curve, len(args))

	for _, arg := range args {
		name, file, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Errorf("argument %q is not impl=file", arg)
		}

		impl, ok := compare.ParseImplementation(name)
		if !ok {
			return fmt.Errorf("unknown implementation %q", name)
		}

		curve, err := response.ReadCSVFile(file)
		if err != nil {
			return fmt.Errorf("%s: %v", file, err)
		}

		curves[impl] = curve
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Implementation\tCutoff [Hz]\tRipple [dB]\tAttenuation [dB]\n")

	for _, impl := range compare.Implementations() {
		curve, ok := curves[impl]
		if !ok {
			continue
		}

		params, err := response.Extract(curve)
		if err != nil {
			return fmt.Errorf("%s: %v", impl.Name(), err)
		}

		fmt.Fprintf(tw, "%s\t%.1f\t%.3f\t%.1f\n",
			impl.DisplayName(), params.CutoffHz, params.PassbandRippleDB, params.StopbandAttenuationDB)
	}

	fmt.Fprintln(tw)

	if pairwise {
		results, err := compare.Pairwise(curves, mode)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "Pair\tPoints\tMag MAE [dB]\tMag RMSE [dB]\tPhase MAE [deg]\tPhase RMSE [deg]\n")

		for _, pr := range results {
			printResult(tw, pr.A.DisplayName()+" vs "+pr.B.DisplayName(), pr.Result)
		}

		return tw.Flush()
	}

	results, err := compare.AgainstReference(curves, ref, mode)
	if err != nil {
		return err
	}

	fmt.Fprintf(tw, "Counterpart\tPoints\tMag MAE [dB]\tMag RMSE [dB]\tPhase MAE [deg]\tPhase RMSE [deg]\n")

	for _, r := range results {
		printResult(tw, r.Counterpart.DisplayName(), r)
	}

	return tw.Flush()
}

func printResult(tw *tabwriter.Writer, label string, r compare.Result) {
	if r.Empty() {
		fmt.Fprintf(tw, "%s\t0\tno overlap\t\t\t\n", label)
		return
	}

	fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
		label, r.Points, r.Magnitude.MAE, r.Magnitude.RMSE, r.Phase.MAE, r.Phase.RMSE)
}
