package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tacc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE:  versionExecution,
}

func versionExecution(cmd *cobra.Command, args []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "tacc %s\n", version.Version)
	if version.GitCommit != "" {
		fmt.Fprintf(os.Stdout, "commit: %s\n", version.GitCommit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(os.Stdout, "built:  %s\n", version.BuildDate)
	}
	return nil
}
