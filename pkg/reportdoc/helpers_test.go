// helpers_test.go builds the minimal DOCX fixtures the tests run against.

package reportdoc

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">` +
	`<w:body>` +
	`<w:p>` +
	`<w:r><w:t>{{HEADER}}</w:t></w:r>` +
	`<w:r><w:t>{{DESCRIPTION}}</w:t></w:r>` +
	`<w:r><w:drawing><a:blip r:embed="rId4"/></w:drawing></w:r>` +
	`</w:p>` +
	`</w:body>` +
	`</w:document>`

const testRelationshipsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`<Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>` +
	`</Relationships>`

// writeTemplateArchive writes a minimal template DOCX containing the given
// document body and relationship manifest.
func writeTemplateArchive(t *testing.T, path, documentXML, relsXML string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create archive: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	parts := map[string]string{
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": relsXML,
		"word/media/image1.png":        "placeholder",
	}
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create archive entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write archive entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close archive: %v", err)
	}
}

// writeTestImage writes a small fake image file and returns its path.
func writeTestImage(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write test image: %v", err)
	}
	return path
}
