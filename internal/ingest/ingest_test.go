package ingest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"essay.txt", FormatText},
		{"README.md", FormatMarkdown},
		{"notes.MARKDOWN", FormatMarkdown},
		{"paper.pdf", FormatPDF},
		{"no-extension", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"text": FormatText, "txt": FormatText, "MD": FormatMarkdown, "pdf": FormatPDF} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("docx")
	assert.Error(t, err)
}

func TestMarkdownToText(t *testing.T) {
	src := "# Guide\n\nThis is *important* text\nwith a [link](http://example.com).\n\n```go\nfmt.Println(\"code\")\n```\n\n- first item\n- second item\n\n> quoted line\n"

	got := MarkdownToText([]byte(src))

	want := "Guide\n\nThis is important text with a link.\n\nfirst item\n\nsecond item\n\nquoted line"
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "Println")
	assert.NotContains(t, got, "example.com")
}

func TestConvertText(t *testing.T) {
	got, err := Convert([]byte("Plain words stay as they are."), FormatText)
	require.NoError(t, err)
	assert.Equal(t, "Plain words stay as they are.", got)

	got, err = Read(strings.NewReader("**bold** move"), FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "bold move", got)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	mdPath := filepath.Join(dir, "draft.md")
	require.NoError(t, os.WriteFile(mdPath, []byte("## Title\n\nBody text."), 0644))
	got, err := ReadFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t, "Title\n\nBody text.", got)

	_, err = ReadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestPDF(t *testing.T) {
	raw := minimalPDF("Hello from a PDF.")

	got, err := Convert(raw, FormatPDF)
	require.NoError(t, err)
	assert.Contains(t, got, "Hello from a PDF.")

	_, err = Convert([]byte("not a pdf at all, just some bytes that are long enough to be read as a tail chunk by the parser"), FormatPDF)
	assert.Error(t, err)
}

func TestNormalizeBlocks(t *testing.T) {
	got := normalizeBlocks("  one   two \n\n\n\n three\n  \n")
	assert.Equal(t, "one two\n\nthree", got)
}

// minimalPDF builds a single-page PDF showing one line of text, with a
// correct cross-reference table
func minimalPDF(line string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", line)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}
