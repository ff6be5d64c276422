// Package main provides the zmodrun workbench CLI.
//
// zmodrun exercises a shell extension module without a live shell: it
// binds the in-memory host, drives the module through its lifecycle
// entry points, and lets you dispatch its builtins and inspect the
// parameters it sets.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zshmod/zsh-runtime/builtins"
	"github.com/zshmod/zsh-runtime/hooks"
	"github.com/zshmod/zsh-runtime/module"
	"github.com/zshmod/zsh-runtime/params"
)

var version = "dev"

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "zmodrun",
		Short: "Run a shell extension module against the in-memory host",
		Long: `Workbench for shell extension modules.

zmodrun loads the bundled greeter module the way a shell would:
setup, feature negotiation, enables, boot. From there you can
dispatch its builtins, fire hooks, and read the parameters it sets,
all against an in-memory host that tracks every allocation.

Examples:
  # Walk the full lifecycle and print the feature set
  zmodrun lifecycle

  # Dispatch a builtin and show what it changed
  zmodrun call greet zsh users

  # Inspect a parameter after booting the module
  zmodrun param GREETER_COUNT

  # Interactive mode
  zmodrun repl`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger, _ := zap.NewDevelopment()
				module.SetLogger(logger)
				hooks.SetLogger(logger)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log host interactions")

	rootCmd.AddCommand(lifecycleCmd(), callCmd(), paramCmd(), replCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func lifecycleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lifecycle",
		Short: "Run setup through finish and report the feature set",
		RunE: func(cmd *cobra.Command, args []string) error {
			hn := newHarness()
			if err := hn.load(); err != nil {
				return err
			}

			fmt.Println("Features:")
			for _, f := range hn.features {
				fmt.Printf("  %s\n", f)
			}

			if err := hn.unload(); err != nil {
				return err
			}
			fmt.Printf("Allocator: %s\n", hn.leakReport())
			return nil
		},
	}
}

func callCmd() *cobra.Command {
	var prompts int

	cmd := &cobra.Command{
		Use:   "call <builtin> [args...]",
		Short: "Boot the module and dispatch one of its builtins",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hn := newHarness()
			if err := hn.load(); err != nil {
				return err
			}

			for i := 0; i < prompts; i++ {
				if err := hooks.Run("precmd"); err != nil {
					return err
				}
			}

			status := builtins.Dispatch(args[0], args[1:])
			fmt.Printf("%s -> status %d\n", args[0], status)

			for _, name := range []string{"GREETER_LAST", "GREETER_COUNT", "GREETER_PROMPTS"} {
				value, err := params.Any(name).GetString()
				if err != nil {
					continue
				}
				fmt.Printf("  %s=%s\n", name, value)
			}

			return hn.unload()
		},
	}
	cmd.Flags().IntVar(&prompts, "prompts", 0, "fire the precmd hook N times before dispatching")
	return cmd
}

func paramCmd() *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "param <name>",
		Short: "Read or write a shell parameter with the module booted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hn := newHarness()
			if err := hn.load(); err != nil {
				return err
			}

			name := args[0]
			if cmd.Flags().Changed("set") {
				if err := params.Any(name).SetString(set); err != nil {
					return err
				}
			}

			handle := params.Any(name)
			kind, err := handle.Kind()
			if err != nil {
				return err
			}
			value, err := handle.GetString()
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s) = %s\n", name, kind, value)
			return nil
		},
	}
	cmd.Flags().StringVar(&set, "set", "", "value to assign before reading")
	return cmd
}

func splitArgs(line string) []string {
	return strings.Fields(line)
}
