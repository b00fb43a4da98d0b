package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qgrover"
	"github.com/theapemachine/qgrover/simulator"
)

func main() {
	fs := pflag.NewFlagSet("qgrover", pflag.ExitOnError)
	qgrover.Flags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "qgrover:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, fs, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "qgrover:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, fs *pflag.FlagSet, out io.Writer) error {
	cfg, err := qgrover.LoadConfig(fs)
	if err != nil {
		return err
	}

	errnie.Info("qgrover - shots %d, seed %d, output %s", cfg.Shots, cfg.Seed, cfg.Output)

	qc, err := qgrover.Algorithm()
	if err != nil {
		return err
	}

	if cfg.Dump {
		if _, err := io.WriteString(out, spew.Sdump(qc.Instructions())); err != nil {
			return fmt.Errorf("write dump: %w", err)
		}
	}

	if cfg.Output == qgrover.OutputQASM {
		if _, err := io.WriteString(out, qc.QASM()); err != nil {
			return fmt.Errorf("write qasm: %w", err)
		}
		return nil
	}

	var opts []simulator.Option
	if cfg.Seed != 0 {
		opts = append(opts, simulator.WithSeed(cfg.Seed))
	}

	memory, err := qgrover.Run(ctx, simulator.New(opts...), cfg.Shots)
	if err != nil {
		return err
	}

	errnie.Info("qgrover - counts %v", qgrover.Tally(memory).Export())

	var text string
	switch cfg.Output {
	case qgrover.OutputMemory:
		text = strings.Join(memory, "\n")
	default:
		text = qgrover.Histogram(memory, qgrover.WithAllOutcomes(qgrover.Qubits))
	}

	if _, err := fmt.Fprintln(out, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
