package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tacc/internal/driver"
	"tacc/internal/observ"
	"tacc/internal/tac"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <file.tac>",
	Short: "Pretty-print a TAC artifact",
	Long:  "Decode a .tac artifact, re-validate its instruction streams and print them.",
	Args:  cobra.ExactArgs(1),
	RunE:  dumpExecution,
}

var dumpHeader = color.New(color.FgCyan, color.Bold)

func dumpExecution(cmd *cobra.Command, args []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	m, err := driver.ReadArtifact(cmd.Context(), args[0], jobs, timer)
	if err != nil {
		return err
	}

	if !quiet {
		dumpHeader.Fprintf(os.Stdout, "%s", args[0])
		fmt.Fprintf(os.Stdout, "  (%d functions)\n", len(m.Funcs))
	}
	if err := tac.DumpModule(os.Stdout, m); err != nil {
		return err
	}
	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}
