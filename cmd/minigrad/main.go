// Package main provides the minigrad CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

func main() {
	klog.InitFlags(nil)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	defer klog.Flush()
	if err := flag.CommandLine.Parse(args); err != nil {
		return err
	}
	args = flag.Args()

	if len(args) == 0 {
		usage(out)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(out, "minigrad %s\n", version)
		return nil
	case "rules":
		listRules(out)
		return nil
	case "check":
		fs := flag.NewFlagSet("check", flag.ContinueOnError)
		seed := fs.Int64("seed", 10, "seed for input values and sampled coordinates")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		failed := runChecks(*seed, out)
		if failed > 0 {
			return errors.Errorf("%d gradient checks failed", failed)
		}
		return nil
	default:
		usage(out)
		return errors.Errorf("unknown command %q", args[0])
	}
}

func usage(out io.Writer) {
	fmt.Fprintf(out, "minigrad %s - reverse-mode autodiff core\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version          Show version")
	fmt.Fprintln(out, "  rules            List the differentiation rules")
	fmt.Fprintln(out, "  check [-seed N]  Run the gradient checker over every differentiable rule")
}
