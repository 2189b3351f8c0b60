package line

import (
	"testing"

	"markxs/internal/source"
)

func newVirtualFile(t *testing.T, content string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.xs", []byte(content))
	return fs.Get(id)
}
