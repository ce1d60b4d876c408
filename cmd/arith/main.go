// Package main provides the arith CLI.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/born-ml/arith/internal/config"
	"github.com/born-ml/arith/internal/dispatch"
	"github.com/born-ml/arith/internal/selector"
	"github.com/born-ml/arith/internal/tensor"
)

const version = "v0.1.0-dev"

func usage() {
	fmt.Println("arith - shape-aware float32 arithmetic")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version                         Show version")
	fmt.Println("  eval [flags] -op OP A [B]       Evaluate an operation on JSON operands")
	fmt.Println("  select [flags] A B              Show the engine chosen for two operands")
	fmt.Println("")
	fmt.Println("Operations: add, subtract, multiply, divide, exp, transpose, product, concat")
	fmt.Println("")
	fmt.Println("Example:")
	fmt.Println(`  arith eval -op add '[[1,2,3]]' '[[1,2,3],[4,5,6]]'`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("arith %s\n", version)
	case "eval":
		err = runEval(os.Args[2:], os.Stdout)
	case "select":
		err = runSelect(os.Args[2:], os.Stdout)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and installs the logger.
func setup(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return cfg, nil
}

func runEval(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to YAML configuration")
	opName := fs.String("op", "add", "Operation to run")
	axis := fs.Int("axis", 0, "Concat axis (0 = rows, 1 = columns)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := setup(*configPath)
	if err != nil {
		return err
	}

	op, ok := tensor.ParseOperation(*opName)
	if !ok {
		return fmt.Errorf("unknown operation %q", *opName)
	}

	want := 2
	if op.IsUnary() {
		want = 1
	}
	if fs.NArg() != want {
		return fmt.Errorf("%s takes %d operand(s), got %d", op, want, fs.NArg())
	}

	operands := make([]tensor.Value, want)
	for i := range operands {
		if operands[i], err = parseValue(fs.Arg(i)); err != nil {
			return fmt.Errorf("operand %d: %w", i, err)
		}
	}

	d, err := dispatch.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	var out tensor.Value
	switch {
	case op == tensor.OpConcat:
		out, err = tensor.Concat(operands[0], operands[1], *axis)
	case op.IsUnary():
		out, err = d.Unary(operands[0], op)
	default:
		out, err = d.Binary(operands[0], operands[1], op)
	}
	if err != nil {
		return err
	}

	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func runSelect(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to YAML configuration")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := setup(*configPath)
	if err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("select takes 2 operands, got %d", fs.NArg())
	}

	shapes := make([]tensor.Shape, 2)
	for i := range shapes {
		v, err := parseValue(fs.Arg(i))
		if err != nil {
			return fmt.Errorf("operand %d: %w", i, err)
		}
		shapes[i] = tensor.ShapeOf(v)
	}

	d, err := dispatch.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	e := d.Selector().Select(shapes[0], shapes[1])
	fmt.Fprintf(w, "shapes:    %s %s\n", shapes[0], shapes[1])
	fmt.Fprintf(w, "cost:      %d (threshold %d)\n", selector.Cost(shapes[0], shapes[1]), d.Selector().Threshold())
	fmt.Fprintf(w, "engine:    %s\n", e.Name())
	return nil
}
