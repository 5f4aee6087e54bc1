package docfill

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

const (
	testXMLDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
	testNS      = ` xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

	testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`
	testRootRels     = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`
)

// documentXML wraps body content in a minimal word/document.xml.
func documentXML(body string) string {
	return testXMLDecl + `<w:document` + testNS + `><w:body>` + body + `</w:body></w:document>`
}

func headerXML(content string) string {
	return testXMLDecl + `<w:hdr` + testNS + `>` + content + `</w:hdr>`
}

func footerXML(content string) string {
	return testXMLDecl + `<w:ftr` + testNS + `>` + content + `</w:ftr>`
}

func para(runs ...string) string {
	return `<w:p>` + strings.Join(runs, "") + `</w:p>`
}

func run(text string) string {
	return `<w:r><w:t>` + text + `</w:t></w:r>`
}

func runWithProps(props, text string) string {
	return `<w:r><w:rPr>` + props + `</w:rPr><w:t>` + text + `</w:t></w:r>`
}

func tableOf(cells ...string) string {
	var rows strings.Builder
	for _, c := range cells {
		rows.WriteString(`<w:tr><w:tc>` + c + `</w:tc></w:tr>`)
	}
	return `<w:tbl>` + rows.String() + `</w:tbl>`
}

// buildDocx assembles an in-memory DOCX from part contents. The content
// types and root relationships parts are filled in unless the caller
// provides them.
func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()

	if _, ok := parts["[Content_Types].xml"]; !ok {
		parts["[Content_Types].xml"] = testContentTypes
	}
	if _, ok := parts["_rels/.rels"]; !ok {
		parts["_rels/.rels"] = testRootRels
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range parts {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to create part %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write part %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// openBody builds a document around the given body XML and returns its body
// container.
func openBody(t *testing.T, body string) (*Document, *Container) {
	t.Helper()

	data := buildDocx(t, map[string]string{
		"word/document.xml": documentXML(body),
	})
	doc, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}
	c, err := doc.Body()
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}
	return doc, c
}

// fragmentXML renders one fragment's subtree, used to assert that
// formatting payloads survive replacement byte for byte.
func fragmentXML(f *Fragment) string {
	return string(serializeTree(f.node))
}
