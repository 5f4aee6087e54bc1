// Package docfill fills placeholder tokens in Microsoft Word documents (DOCX).
//
// A template carries literal markers such as {{CASE_NUM}} anywhere in its
// body, tables, nested tables, or section headers and footers. Docfill
// locates each marker, even when Word has split its characters across
// several independently styled runs, and rewrites only the affected runs,
// leaving every other byte of the package untouched.
//
// # Quick Start
//
//	doc, err := docfill.OpenFile("template.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tokens := docfill.TokenMap{
//	    {Key: "{{CASE_NUM}}", Value: "123456"},
//	    {Key: "{{DATE}}", Value: "«01» серпня 2026 року"},
//	}
//
//	if err := doc.ReplaceAll(tokens); err != nil {
//	    log.Fatal(err)
//	}
//	if err := doc.Save("letter.docx"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Data Model
//
// DOCX files are ZIP archives of XML parts. Docfill parses the parts it
// mutates (word/document.xml plus any header/footer parts) into a node tree
// and wraps the nodes in a small closed set of types:
//
//   - Document: the open package and its parts
//   - Container: owns paragraphs and tables (body, table cell, header, footer)
//   - Table, Row: table structure; each cell is itself a Container
//   - Paragraph: ordered runs whose concatenated text is the visible text
//   - Fragment: one styled run; the unit of formatting, not of search
//
// Formatting is never interpreted. Run properties and any XML docfill does
// not model ride along verbatim from input to output.
//
// # Token Maps
//
// A TokenMap is ordered: when several tokens occur in one paragraph, the
// occurrence with the lowest offset is replaced first, and map order breaks
// ties. Replacement repeats per paragraph until no token remains, so a
// replacement value must not contain another token's key unless re-expansion
// is intended.
//
// # Thread Safety
//
// A Document is not safe for concurrent mutation. The caller owns the tree
// exclusively for the duration of ReplaceAll.
package docfill
