package docfill

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	documentPart = "word/document.xml"
	documentRels = "word/_rels/document.xml.rels"

	headerRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	footerRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
)

// Relationship represents a relationship in the DOCX package.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships of a part.
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Relationship []Relationship `xml:"Relationship"`
}

// Document is an open DOCX package. Parts that are never touched by a
// replacement are carried from input to output byte for byte.
type Document struct {
	reader *zip.Reader
	parts  map[string]*zip.File
	parsed map[string]*part
	config *Config
}

// Open reads a DOCX package from r.
func Open(r io.ReaderAt, size int64) (*Document, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, NewDocumentError("open", "", fmt.Errorf("failed to read zip file: %w", err))
	}

	d := &Document{
		reader: zipReader,
		parts:  make(map[string]*zip.File),
		parsed: make(map[string]*part),
		config: GetGlobalConfig(),
	}

	for _, file := range zipReader.File {
		d.parts[file.Name] = file
	}

	// A package without a main document part is not a DOCX file.
	if _, ok := d.parts[documentPart]; !ok {
		return nil, NewDocumentError("open", "", fmt.Errorf("not a valid DOCX file: missing %s", documentPart))
	}

	return d, nil
}

// OpenBytes reads a DOCX package held in memory.
func OpenBytes(data []byte) (*Document, error) {
	return Open(bytes.NewReader(data), int64(len(data)))
}

// OpenFile reads a DOCX package from disk.
func OpenFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	doc, err := OpenBytes(content)
	if err != nil {
		if de, ok := err.(*DocumentError); ok {
			de.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Part returns the raw content of a package part.
func (d *Document) Part(name string) ([]byte, error) {
	file, ok := d.parts[name]
	if !ok {
		return nil, NewPartError(name, fmt.Errorf("part not found"))
	}

	rc, err := file.Open()
	if err != nil {
		return nil, NewPartError(name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, NewPartError(name, err)
	}

	return content, nil
}

// ListParts returns the names of all parts in package order.
func (d *Document) ListParts() []string {
	names := make([]string, 0, len(d.reader.File))
	for _, file := range d.reader.File {
		names = append(names, file.Name)
	}
	return names
}

// Relationships returns the relationships of a part, resolved from its
// sibling _rels file. A missing relationships file yields an empty slice.
func (d *Document) Relationships(partName string) ([]Relationship, error) {
	dir := ""
	base := partName
	if idx := strings.LastIndex(partName, "/"); idx != -1 {
		dir = partName[:idx]
		base = partName[idx+1:]
	}

	relPath := fmt.Sprintf("%s/_rels/%s.rels", dir, base)
	if dir == "" {
		relPath = fmt.Sprintf("_rels/%s.rels", base)
	}

	if _, ok := d.parts[relPath]; !ok {
		return []Relationship{}, nil
	}

	content, err := d.Part(relPath)
	if err != nil {
		return nil, err
	}

	var rels Relationships
	if err := xml.Unmarshal(content, &rels); err != nil {
		return nil, NewPartError(relPath, fmt.Errorf("failed to parse relationships: %w", err))
	}

	return rels.Relationship, nil
}

// headerFooterParts resolves every header and footer part referenced from
// the main document. Word emits one part per section and reference type
// (default, first page, even pages); all of them are returned.
func (d *Document) headerFooterParts() ([]string, error) {
	rels, err := d.Relationships(documentPart)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, rel := range rels {
		if rel.Type != headerRelType && rel.Type != footerRelType {
			continue
		}
		name := resolvePartTarget(documentPart, rel.Target)
		if _, ok := d.parts[name]; !ok {
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

// resolvePartTarget turns a relationship target into a package part name.
// Targets are relative to the source part's directory unless they start
// with "/".
func resolvePartTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	dir := ""
	if idx := strings.LastIndex(source, "/"); idx != -1 {
		dir = source[:idx]
	}
	if dir == "" {
		return target
	}
	return dir + "/" + target
}

// WriteTo writes the package to w. Mutated parts are serialized from their
// node trees; everything else is streamed through unchanged, in the
// original part order.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	zw := zip.NewWriter(w)

	var written int64
	for _, file := range d.reader.File {
		fw, err := zw.Create(file.Name)
		if err != nil {
			return written, NewPartError(file.Name, err)
		}

		if p, ok := d.parsed[file.Name]; ok && p.dirty {
			data := serializeTree(p.root)
			n, err := fw.Write(data)
			written += int64(n)
			if err != nil {
				return written, NewPartError(file.Name, err)
			}
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return written, NewPartError(file.Name, err)
		}
		n, err := io.Copy(fw, rc)
		rc.Close()
		written += n
		if err != nil {
			return written, NewPartError(file.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return written, NewDocumentError("write", "", err)
	}
	return written, nil
}

// Bytes returns the serialized package.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the package to path. The write goes through a temporary file
// in the same directory followed by a rename, so a crash mid-write never
// leaves a truncated document behind.
func (d *Document) Save(path string) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))

	f, err := os.Create(tmp)
	if err != nil {
		return NewDocumentError("save", path, err)
	}

	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return NewDocumentError("save", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return NewDocumentError("save", path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return NewDocumentError("save", path, err)
	}
	return nil
}
