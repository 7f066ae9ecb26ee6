package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/diagfmt"
	"quill/internal/driver"
)

var outlineCmd = &cobra.Command{
	Use:   "outline [flags] file.ts",
	Short: "Print the structural outline of a content source file",
	Long:  `Outline groups a content source file into its declaration tree and prints it`,
	Args:  cobra.ExactArgs(1),
	RunE:  runOutline,
}

func init() {
	outlineCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runOutline(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Outline(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("outline failed: %w", err)
	}

	printDiagnostics(cmd, result.Bag, result.FileSet)

	switch format {
	case "pretty":
		return diagfmt.FormatOutlinePretty(os.Stdout, result.Tree, result.FileSet)
	case "json":
		return diagfmt.FormatOutlineJSON(os.Stdout, result.Tree, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
