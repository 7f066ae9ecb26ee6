package driver

import (
	"quill/internal/diag"
	"quill/internal/group"
	"quill/internal/lexer"
	"quill/internal/source"
	"quill/internal/token"
)

// OutlineResult carries the grouped structure of one file.
type OutlineResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Tree    *group.Tree
	Bag     *diag.Bag
}

// Outline loads path, tokenizes it, and groups the result into a tree.
func Outline(path string, maxDiagnostics int) (*OutlineResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	tree := group.Build(file, tokens, rep)

	return &OutlineResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Tree:    tree,
		Bag:     bag,
	}, nil
}

// OutlineContent groups already-loaded content under a virtual file name.
// Used by commands that read from stdin.
func OutlineContent(name string, content []byte, maxDiagnostics int) *OutlineResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))

	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	tree := group.Build(file, tokens, rep)

	return &OutlineResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Tree:    tree,
		Bag:     bag,
	}
}
