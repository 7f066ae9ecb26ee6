package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"quill/internal/builder"
	"quill/internal/source"
)

var propCmd = &cobra.Command{
	Use:   "prop",
	Short: "Query and edit object literal properties",
	Long:  `Prop reads and surgically rewrites properties of object literals bound to top-level declarations`,
}

var propGetCmd = &cobra.Command{
	Use:   "get [flags] file.ts object.path name",
	Short: "Print the value text of a property",
	Args:  cobra.ExactArgs(3),
	RunE:  runPropGet,
}

var propSetCmd = &cobra.Command{
	Use:   "set [flags] file.ts object.path name value",
	Short: "Set a property value, appending the property when absent",
	Args:  cobra.ExactArgs(4),
	RunE:  runPropSet,
}

var propAddCmd = &cobra.Command{
	Use:   "add [flags] file.ts object.path name value",
	Short: "Insert a property at a position",
	Args:  cobra.ExactArgs(4),
	RunE:  runPropAdd,
}

var propRmCmd = &cobra.Command{
	Use:   "rm [flags] file.ts object.path name",
	Short: "Remove a property and its separator",
	Args:  cobra.ExactArgs(3),
	RunE:  runPropRm,
}

func init() {
	propCmd.AddCommand(propGetCmd)
	propCmd.AddCommand(propSetCmd)
	propCmd.AddCommand(propAddCmd)
	propCmd.AddCommand(propRmCmd)

	for _, c := range []*cobra.Command{propSetCmd, propAddCmd, propRmCmd} {
		c.Flags().BoolP("write", "w", false, "write the result back to the file instead of stdout")
	}
	propAddCmd.Flags().Int("index", -1, "insert position (default: append)")
	propAddCmd.Flags().String("after", "", "insert after the named property")
}

// loadBuilder parses path through a FileSet so CRLF/BOM normalization
// matches the rest of the toolchain.
func loadBuilder(path string) (*builder.CodeBuilder, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return builder.NewFromFile(fs, id), nil
}

// resolveObject walks a dot-separated path of object names, the first being
// a top-level declaration.
func resolveObject(cb *builder.CodeBuilder, path string) (*builder.ObjectBuilder, error) {
	parts := strings.Split(path, ".")
	ob, ok := cb.FindObject(parts[0])
	if !ok {
		return nil, fmt.Errorf("object %q not found", parts[0])
	}
	for _, part := range parts[1:] {
		ob, ok = ob.FindObject(part)
		if !ok {
			return nil, fmt.Errorf("object %q not found in path %q", part, path)
		}
	}
	return ob, nil
}

// emitResult renders the pending edits and writes them to the file or
// stdout.
func emitResult(cmd *cobra.Command, cb *builder.CodeBuilder, path string) error {
	out, err := cb.Render()
	if err != nil {
		return err
	}
	printDiagnostics(cmd, cb.Diagnostics(), cb.FileSet())

	write, _ := cmd.Flags().GetBool("write")
	if write {
		return os.WriteFile(path, []byte(out), 0o644)
	}
	_, err = fmt.Fprint(os.Stdout, out)
	return err
}

func runPropGet(cmd *cobra.Command, args []string) error {
	cb, err := loadBuilder(args[0])
	if err != nil {
		return err
	}
	ob, err := resolveObject(cb, args[1])
	if err != nil {
		return err
	}
	value, ok := ob.PropertyValueText(args[2])
	if !ok {
		return fmt.Errorf("property %q not found", args[2])
	}
	fmt.Fprintln(os.Stdout, value)
	return nil
}

func runPropSet(cmd *cobra.Command, args []string) error {
	cb, err := loadBuilder(args[0])
	if err != nil {
		return err
	}
	ob, err := resolveObject(cb, args[1])
	if err != nil {
		return err
	}
	if err := ob.SetPropertyValue(args[2], args[3]); err != nil {
		return err
	}
	return emitResult(cmd, cb, args[0])
}

func runPropAdd(cmd *cobra.Command, args []string) error {
	cb, err := loadBuilder(args[0])
	if err != nil {
		return err
	}
	ob, err := resolveObject(cb, args[1])
	if err != nil {
		return err
	}

	after, _ := cmd.Flags().GetString("after")
	index, _ := cmd.Flags().GetInt("index")
	switch {
	case after != "":
		err = ob.AddPropertyAfterItem(after, args[2], args[3])
	case index >= 0:
		err = ob.AddPropertyAtIndex(index, args[2], args[3])
	default:
		err = ob.AddPropertyAtIndex(len(ob.ParseProperties()), args[2], args[3])
	}
	if err != nil {
		return err
	}
	return emitResult(cmd, cb, args[0])
}

func runPropRm(cmd *cobra.Command, args []string) error {
	cb, err := loadBuilder(args[0])
	if err != nil {
		return err
	}
	ob, err := resolveObject(cb, args[1])
	if err != nil {
		return err
	}
	if !ob.RemoveProperty(args[2]) {
		return fmt.Errorf("property %q not found", args[2])
	}
	return emitResult(cmd, cb, args[0])
}
