package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/diagfmt"
	"quill/internal/driver"
	"quill/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [dir]",
	Short: "Tokenize and outline every content file under a directory",
	Long:  `Check runs the full pipeline over a directory tree in parallel and reports per-file structure and diagnostics`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = all cores)")
	checkCmd.Flags().Bool("no-cache", false, "bypass the outline cache")
	checkCmd.Flags().Bool("no-ui", false, "disable the interactive progress view")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := ""
	if len(args) == 1 {
		dir = args[0]
	} else {
		manifest, ok, err := loadProjectManifest(".")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no quill.toml found; pass a directory explicitly, e.g.:\n  quill check path/to/content")
		}
		dir = manifest.ContentDir()
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	noUI, _ := cmd.Flags().GetBool("no-ui")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	var cache *driver.DiskCache
	if !noCache {
		// cache failures downgrade to a cold run
		if c, err := driver.OpenDiskCache("quill"); err == nil {
			cache = c
		}
	}

	opts := driver.CheckOptions{
		MaxDiagnostics: maxDiagnostics(cmd),
		Jobs:           jobs,
		Cache:          cache,
	}

	interactive := !noUI && !quiet && isTerminal(os.Stdout)
	var events chan driver.Event
	var uiDone chan error
	if interactive {
		files, err := driver.ListContentFiles(dir)
		if err != nil {
			return err
		}
		events = make(chan driver.Event, 64)
		opts.Events = events
		uiDone = make(chan error, 1)
		go func() {
			uiDone <- ui.RunProgress("checking "+dir, files, events)
		}()
	}

	fileSet, results, err := driver.CheckDir(context.Background(), dir, opts)
	if interactive {
		if uiErr := <-uiDone; uiErr != nil && err == nil {
			err = uiErr
		}
	}
	if err != nil {
		return err
	}

	totalErrs, totalWarns := 0, 0
	for _, r := range results {
		totalErrs += r.Errors
		totalWarns += r.Warnings

		if !quiet {
			cached := ""
			if r.FromCache {
				cached = " (cached)"
			}
			fmt.Fprintf(os.Stdout, "%s: %d declarations, %d errors, %d warnings%s\n",
				r.Path, len(r.Decls), r.Errors, r.Warnings, cached)
		}
		if r.Bag.Len() > 0 {
			r.Bag.Sort()
			diagfmt.Pretty(os.Stderr, r.Bag, fileSet, diagfmt.PrettyOpts{
				Color:     useColor(cmd, os.Stderr),
				PathMode:  diagfmt.PathModeRelative,
				ShowNotes: true,
			})
		}
	}

	if !quiet {
		fmt.Fprintf(os.Stdout, "checked %d files: %d errors, %d warnings\n",
			len(results), totalErrs, totalWarns)
	}
	if totalErrs > 0 {
		return fmt.Errorf("check found %d errors", totalErrs)
	}
	return nil
}
