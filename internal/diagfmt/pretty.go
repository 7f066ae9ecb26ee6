package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"quill/internal/diag"
	"quill/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	noteColor = color.New(color.FgBlue)
	markColor = color.New(color.FgRed)
)

// Pretty renders diagnostics in a human-readable form. Expects bag.Sort() to
// have been called. Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline under the span, then
// notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printHeader(w, fs, d.Primary, severityLabel(d.Severity, opts.Color), d.Code.ID(), d.Message, opts)
		printContext(w, fs, d.Primary, opts)

		if opts.ShowNotes {
			for _, n := range d.Notes {
				label := "note"
				if opts.Color {
					label = noteColor.Sprint(label)
				}
				printHeader(w, fs, n.Span, label, "", n.Msg, opts)
				printContext(w, fs, n.Span, opts)
			}
		}
	}
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return errColor.Sprint(label)
	case diag.SevWarning:
		return warnColor.Sprint(label)
	default:
		return infoColor.Sprint(label)
	}
}

func printHeader(w io.Writer, fs *source.FileSet, span source.Span, label, code, msg string, opts PrettyOpts) {
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	path := f.FormatPath(opts.PathMode.formatMode(), fs.BaseDir())
	if code != "" {
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, label, code, msg)
		return
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, start.Line, start.Col, label, msg)
}

// printContext prints the first source line of the span with an underline.
// Width math uses display cells so wide runes do not skew the marker.
func printContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" && span.Empty() {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	// columns are 1-based byte offsets within the line
	prefix := sliceLine(line, 0, int(start.Col)-1)
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))

	underWidth := 1
	if end.Line == start.Line && end.Col > start.Col {
		marked := sliceLine(line, int(start.Col)-1, int(end.Col)-1)
		underWidth = runewidth.StringWidth(marked)
	} else if end.Line > start.Line {
		// multi-line span: underline to the end of the first line
		rest := sliceLine(line, int(start.Col)-1, len(line))
		underWidth = runewidth.StringWidth(rest)
	}
	if underWidth < 1 {
		underWidth = 1
	}

	marker := "^" + strings.Repeat("~", underWidth-1)
	if opts.Color {
		marker = markColor.Sprint(marker)
	}
	fmt.Fprintf(w, "  %s%s\n", pad, marker)
}

func sliceLine(line string, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(line) {
		to = len(line)
	}
	if from >= to {
		return ""
	}
	return line[from:to]
}
