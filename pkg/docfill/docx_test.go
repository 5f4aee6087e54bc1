package docfill

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) []byte
		wantErr bool
	}{
		{
			name: "valid docx",
			setup: func(t *testing.T) []byte {
				return buildDocx(t, map[string]string{
					"word/document.xml": documentXML(para(run("hello"))),
				})
			},
		},
		{
			name: "missing document part",
			setup: func(t *testing.T) []byte {
				return buildDocx(t, map[string]string{
					"word/styles.xml": testXMLDecl + `<w:styles` + testNS + `/>`,
				})
			},
			wantErr: true,
		},
		{
			name: "not a zip",
			setup: func(t *testing.T) []byte {
				return []byte("not a zip file")
			},
			wantErr: true,
		},
		{
			name: "empty zip",
			setup: func(t *testing.T) []byte {
				var buf bytes.Buffer
				w := zip.NewWriter(&buf)
				w.Close()
				return buf.Bytes()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenBytes(tt.setup(t))
			if (err != nil) != tt.wantErr {
				t.Errorf("OpenBytes() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDocument_Part(t *testing.T) {
	doc, _ := openBody(t, para(run("x")))

	content, err := doc.Part(documentPart)
	if err != nil {
		t.Fatalf("Part() error = %v", err)
	}
	if !strings.Contains(string(content), "<w:body>") {
		t.Errorf("unexpected document.xml content: %s", content)
	}

	if _, err := doc.Part("word/nonexistent.xml"); err == nil {
		t.Error("Part() on missing part: expected error")
	}
}

func TestDocument_Relationships(t *testing.T) {
	data := documentWithHeaderFooter(t, para(run("b")), para(run("h")), para(run("f")))
	doc, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}

	rels, err := doc.Relationships(documentPart)
	if err != nil {
		t.Fatalf("Relationships() error = %v", err)
	}
	if len(rels) != 2 {
		t.Fatalf("expected 2 relationships, got %d", len(rels))
	}
	if rels[0].Target != "header1.xml" {
		t.Errorf("first relationship target = %q, want header1.xml", rels[0].Target)
	}

	// A part without a rels file yields an empty slice, not an error.
	empty, err := doc.Relationships("word/header1.xml")
	if err != nil {
		t.Fatalf("Relationships() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no relationships, got %d", len(empty))
	}
}

func TestResolvePartTarget(t *testing.T) {
	tests := []struct {
		source string
		target string
		want   string
	}{
		{"word/document.xml", "header1.xml", "word/header1.xml"},
		{"word/document.xml", "/word/header1.xml", "word/header1.xml"},
		{"document.xml", "header1.xml", "header1.xml"},
		{"word/document.xml", "media/image1.png", "word/media/image1.png"},
	}
	for _, tt := range tests {
		if got := resolvePartTarget(tt.source, tt.target); got != tt.want {
			t.Errorf("resolvePartTarget(%q, %q) = %q, want %q", tt.source, tt.target, got, tt.want)
		}
	}
}

func TestDocument_Save(t *testing.T) {
	dir := t.TempDir()
	doc, _ := openBody(t, para(run("No. {{CASE_NUM}}")))

	if err := doc.ReplaceAll(TokenMap{{Key: "{{CASE_NUM}}", Value: "99"}}); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	out := filepath.Join(dir, "letter.docx")
	if err := doc.Save(out); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	saved, err := OpenFile(out)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	body, err := saved.Body()
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}
	if got := body.Paragraphs()[0].Text(); got != "No. 99" {
		t.Errorf("saved text = %q, want %q", got, "No. 99")
	}

	// The temp file used during save must be gone.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("stale temp file left behind: %s", e.Name())
		}
	}
}

func TestDocument_WriteTo_PreservesUntouchedParts(t *testing.T) {
	styles := testXMLDecl + `<w:styles` + testNS + `><w:style w:styleId="Normal"/></w:styles>`
	data := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(para(run("{{A}}"))),
		"word/styles.xml":   styles,
	})

	doc, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}
	if err := doc.ReplaceAll(TokenMap{{Key: "{{A}}", Value: "B"}}); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	reopened, err := OpenBytes(out)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	got, err := reopened.Part("word/styles.xml")
	if err != nil {
		t.Fatalf("Part() error = %v", err)
	}
	if string(got) != styles {
		t.Errorf("untouched part changed:\n got  %s\n want %s", got, styles)
	}
}
