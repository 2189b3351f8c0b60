package driver

import (
	"markxs/internal/ast"
	"markxs/internal/diag"
	"markxs/internal/parser"
	"markxs/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	FileID  source.FileID
	Doc     *ast.Document
	Bag     *diag.Bag
}

// Parse loads and parses one document from disk.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	return parseLoaded(fs, fileID, maxDiagnostics), nil
}

// ParseVirtual parses in-memory content under the given name. Used by tests
// and stdin input.
func ParseVirtual(name string, content []byte, maxDiagnostics int) *ParseResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parseLoaded(fs, fileID, maxDiagnostics)
}

func parseLoaded(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) *ParseResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	doc := parser.ParseFile(file, parser.Options{
		Reporter: &diag.BagReporter{Bag: bag},
	})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		FileID:  fileID,
		Doc:     doc,
		Bag:     bag,
	}
}
