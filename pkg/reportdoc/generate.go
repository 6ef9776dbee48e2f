package reportdoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	documentPath      = "word/document.xml"
	relationshipsPath = "word/_rels/document.xml.rels"
	mediaDir          = "word/media"

	headerToken      = "{{HEADER}}"
	descriptionToken = "{{DESCRIPTION}}"

	wordMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

// Generate extracts the template archive into a fresh working tree, clones
// the body's first block once per entry, and repacks the mutated tree into
// outputPath. Entries render in input order; a page break follows every
// block, including the last. On failure nothing is guaranteed to have been
// written to outputPath; the working tree is removed on every exit path.
func (g *Generator) Generate(templatePath, outputPath string, entries []Entry) error {
	wt, err := newWorkTree(g.workDir)
	if err != nil {
		return err
	}
	defer wt.Close()

	log := g.logger.With(zap.String("template", templatePath))
	log.Debug("extracting template archive", zap.String("worktree", wt.root))
	if err := ExtractArchive(templatePath, wt.root); err != nil {
		return err
	}

	docPath := wt.Path(filepath.FromSlash(documentPath))
	root, err := ParseXMLFile(docPath)
	if err != nil {
		return err
	}

	body := root.Find("body")
	if body == nil {
		return NewStructureError("document has no body element")
	}
	if len(body.Children) == 0 {
		return NewStructureError("document body is empty, nothing to use as a page template")
	}

	// The first block is the page pattern; the template's example content
	// is discarded
	prototype := body.Children[0].Clone()
	body.RemoveChildren()

	manifest, err := LoadRelationships(wt.Path(filepath.FromSlash(relationshipsPath)))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(wt.Path(filepath.FromSlash(mediaDir)), 0o755); err != nil {
		return err
	}

	for i, entry := range entries {
		log.Debug("rendering entry", zap.Int("index", i), zap.String("header", entry.Header))
		if err := g.renderEntry(wt, body, prototype, manifest, entry); err != nil {
			return NewEntryError(i, err)
		}
	}

	if err := WriteXMLFile(docPath, root); err != nil {
		return err
	}
	if err := manifest.Save(wt.Path(filepath.FromSlash(relationshipsPath))); err != nil {
		return err
	}

	log.Debug("repacking archive", zap.String("output", outputPath), zap.Int("entries", len(entries)))
	return PackArchive(wt.root, outputPath)
}

// renderEntry clones the page prototype, substitutes its tokens, embeds the
// entry's image under a fresh relationship id, and appends the block plus a
// page break to the body.
func (g *Generator) renderEntry(wt *workTree, body, prototype *Node, manifest *Manifest, entry Entry) error {
	block := prototype.Clone()

	for _, t := range block.FindText(headerToken) {
		t.SetText(entry.Header)
	}
	for _, t := range block.FindText(descriptionToken) {
		t.SetText(entry.Description)
	}

	id := manifest.AllocateID()
	mediaName := mediaFileName(id, entry.ImagePath)
	if err := copyFile(entry.ImagePath, wt.Path(filepath.FromSlash(mediaDir), mediaName)); err != nil {
		return err
	}
	if err := manifest.Add(id, "media/"+mediaName, imageRelationshipType); err != nil {
		return err
	}

	blip := block.Find("blip")
	if blip == nil {
		return NewStructureError("page template has no image placeholder")
	}
	blip.SetAttr("embed", id)

	body.AppendChild(block)
	body.AppendChild(pageBreak())
	return nil
}

// mediaFileName derives the embedded file name from the allocated
// relationship id and the source image's extension.
func mediaFileName(relID, imagePath string) string {
	counter := strings.TrimPrefix(relID, relationshipIDPrefix)
	return "image" + counter + strings.ToLower(filepath.Ext(imagePath))
}

// pageBreak builds a <w:p><w:r><w:br w:type="page"/></w:r></w:p> block.
func pageBreak() *Node {
	br := &Node{
		Name: xml.Name{Space: wordMLNamespace, Local: "br"},
		Attrs: []Attr{
			{Name: xml.Name{Space: wordMLNamespace, Local: "type"}, Value: "page"},
		},
	}
	run := &Node{Name: xml.Name{Space: wordMLNamespace, Local: "r"}}
	run.AppendChild(br)
	para := &Node{Name: xml.Name{Space: wordMLNamespace, Local: "p"}}
	para.AppendChild(run)
	return para
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to read image '%s': %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy image '%s': %w", src, err)
	}
	return out.Close()
}
