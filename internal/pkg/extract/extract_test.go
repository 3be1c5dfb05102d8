package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPlain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("  hello world\nsecond line  "), 0o644))

	text, err := Text(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world\nsecond line", text)
}

func TestTextEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("   \n\t "), 0o644))

	_, err := Text(path)
	assert.Error(t, err)
}

func TestTextUnsupportedExtension(t *testing.T) {
	_, err := Text("document.docx")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestTextMissingPDF(t *testing.T) {
	_, err := Text(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
