package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hurryabit/ruceki/internal/logio"
	"github.com/hurryabit/ruceki/internal/panicerr"
)

func main() {
	log := &logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()
	log.ErrorIf(rootCommand(log).Execute())
}

func rootCommand(log *logio.Logger) *cobra.Command {
	var (
		trace   bool
		dump    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ruceki <module file>",
		Short: "Run a serialized functional program on a CEK machine",
		Long: `ruceki loads a module of top-level lambda definitions from a serialized
file, then reduces the canonical entry point Ap(main, unit) on a CEK-style
abstract machine against standard input and output. The step count is
reported on standard error when the run completes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return runModule(log, args[0], trace, dump, timeout)
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "trace every machine step to stderr")
	cmd.Flags().BoolVar(&dump, "dump", false, "print a machine dump after execution")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "specify a time limit")

	return cmd
}

func runModule(log *logio.Logger, path string, trace, dump bool, timeout time.Duration) error {
	module, err := LoadModule(path)
	if err != nil {
		return fmt.Errorf("failed to load module: %w", err)
	}
	log.Printf("", "Loaded\n==========")

	opts := []Option{
		WithModule(module),
		WithInput(os.Stdin),
		WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}

	m := New(opts...)
	defer m.Close()

	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		defer machDumper{mach: m, out: lw}.dump()
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := m.Run(ctx); err != nil {
		if stack := panicerr.PanicStack(err); stack != "" {
			log.Printf("STACK", "%s", stack)
		}
		return err
	}
	log.Printf("", "==========\nSteps: %v", m.Steps())
	return nil
}
