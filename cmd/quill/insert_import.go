package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/group"
)

var insertImportCmd = &cobra.Command{
	Use:   "insert-import [flags] file.ts statement",
	Short: "Insert an import statement",
	Long:  `Insert-import places a new top-level statement after the existing import block, or at an explicit index`,
	Args:  cobra.ExactArgs(2),
	RunE:  runInsertImport,
}

func init() {
	insertImportCmd.Flags().Int("index", -1, "top-level insert position (default: after the last import)")
	insertImportCmd.Flags().BoolP("write", "w", false, "write the result back to the file instead of stdout")
}

func runInsertImport(cmd *cobra.Command, args []string) error {
	cb, err := loadBuilder(args[0])
	if err != nil {
		return err
	}

	index, _ := cmd.Flags().GetInt("index")
	if index < 0 {
		index = importBlockEnd(cb.Tree())
	}
	if err := cb.InsertCodeAtIndex(index, args[1]); err != nil {
		return err
	}

	out, err := cb.Render()
	if err != nil {
		return err
	}
	printDiagnostics(cmd, cb.Diagnostics(), cb.FileSet())

	write, _ := cmd.Flags().GetBool("write")
	if write {
		return os.WriteFile(args[0], []byte(out), 0o644)
	}
	_, err = fmt.Fprint(os.Stdout, out)
	return err
}

// importBlockEnd returns the index just past the leading run of imports.
func importBlockEnd(tree *group.Tree) int {
	n := 0
	for _, c := range tree.Get(tree.Root()).Children {
		if tree.Get(c).Kind != group.ImportDecl {
			break
		}
		n++
	}
	return n
}
