package reportdoc

import (
	"encoding/xml"
	"io"
	"os"
	"strings"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// namespacePrefixes converts the full namespace URIs the decoder resolves
// back to the prefixes Word expects on serialization
var namespacePrefixes = map[string]string{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":           "w",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships":    "r",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
	"http://schemas.openxmlformats.org/drawingml/2006/picture":               "pic",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.openxmlformats.org/markup-compatibility/2006":            "mc",
	"http://schemas.openxmlformats.org/officeDocument/2006/math":             "m",
	"http://schemas.microsoft.com/office/word/2010/wordml":                   "w14",
	"http://schemas.microsoft.com/office/word/2012/wordml":                   "w15",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingShape":      "wps",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingGroup":      "wpg",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing":    "wp14",
	"http://schemas.microsoft.com/office/drawing/2010/main":                  "a14",
	"http://www.w3.org/XML/1998/namespace":                                   "xml",
	"urn:schemas-microsoft-com:vml":                                          "v",
	"urn:schemas-microsoft-com:office:office":                                "o",
	"urn:schemas-microsoft-com:office:word":                                  "w10",
}

// Attr is a single attribute on an element node.
type Attr struct {
	Name  xml.Name
	Value string
}

// Node is one node of a parsed markup tree. Element nodes carry a Name,
// attributes and children; text nodes carry only Text. Parent links are
// maintained by the tree operations so a node always knows its owner.
type Node struct {
	Name     xml.Name
	Attrs    []Attr
	Text     string
	Parent   *Node
	Children []*Node
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool {
	return n.Name.Local == ""
}

// ParseXML reads an XML document from r into a mutable node tree.
func ParseXML(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)

	var root *Node
	var current *Node
	var stack []*Node

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name}
			for _, attr := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: attr.Name, Value: attr.Value})
			}
			if current != nil {
				current.AppendChild(node)
			} else if root == nil {
				root = node
			}
			stack = append(stack, node)
			current = node

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				current = stack[len(stack)-1]
			} else {
				current = nil
			}

		case xml.CharData:
			if current == nil {
				continue
			}
			// Inter-element whitespace carries no content
			if strings.TrimSpace(string(t)) == "" {
				continue
			}
			current.AppendChild(&Node{Text: string(t)})
		}
	}

	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// ParseXMLFile loads the XML file at path into a mutable node tree.
func ParseXMLFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewMarkupError(path, err)
	}
	defer f.Close()

	root, err := ParseXML(f)
	if err != nil {
		return nil, NewMarkupError(path, err)
	}
	return root, nil
}

// Clone returns a deep copy of the node, fully detached from its original
// tree: no attribute slice, child node or parent link is shared, so the
// copy can be mutated without affecting the source.
func (n *Node) Clone() *Node {
	clone := &Node{
		Name: n.Name,
		Text: n.Text,
	}
	if len(n.Attrs) > 0 {
		clone.Attrs = make([]Attr, len(n.Attrs))
		copy(clone.Attrs, n.Attrs)
	}
	for _, child := range n.Children {
		clone.AppendChild(child.Clone())
	}
	return clone
}

// AppendChild attaches child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChildren detaches all children from n.
func (n *Node) RemoveChildren() {
	for _, child := range n.Children {
		child.Parent = nil
	}
	n.Children = nil
}

// Find returns the first descendant element whose local name equals local,
// searching depth-first, or nil if none exists. Namespace prefixes are not
// considered, matching how OOXML consumers address elements.
func (n *Node) Find(local string) *Node {
	for _, child := range n.Children {
		if child.Name.Local == local {
			return child
		}
		if found := child.Find(local); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant element whose local name equals local,
// in document order.
func (n *Node) FindAll(local string) []*Node {
	var found []*Node
	for _, child := range n.Children {
		if child.Name.Local == local {
			found = append(found, child)
		}
		found = append(found, child.FindAll(local)...)
	}
	return found
}

// FindText returns every descendant text node whose entire content equals
// literal. Matching is exact and case-sensitive; a text node containing the
// literal as a substring is not a match. Tokens split across sibling runs
// by the markup generator are therefore not found.
func (n *Node) FindText(literal string) []*Node {
	var found []*Node
	for _, child := range n.Children {
		if child.IsText() && child.Text == literal {
			found = append(found, child)
		}
		found = append(found, child.FindText(literal)...)
	}
	return found
}

// Attr returns the value of the first attribute with the given local name
// and whether it was present.
func (n *Node) Attr(local string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

// SetAttr updates the first attribute with the given local name, or appends
// a new unprefixed attribute if none exists.
func (n *Node) SetAttr(local, value string) {
	for i, attr := range n.Attrs {
		if attr.Name.Local == local {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: xml.Name{Local: local}, Value: value})
}

// SetText replaces the content of a text node.
func (n *Node) SetText(text string) {
	n.Text = text
}

// XML serializes the subtree rooted at n back to markup text.
func (n *Node) XML() string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

// WriteXMLFile serializes the tree rooted at root into the file at path,
// prefixed with the standard XML declaration.
func WriteXMLFile(path string, root *Node) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, xmlHeader+root.XML()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeNode(sb *strings.Builder, n *Node) {
	if n.IsText() {
		_ = xml.EscapeText(sb, []byte(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(qualifiedName(n.Name))
	for _, attr := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(qualifiedAttrName(attr.Name))
		sb.WriteString(`="`)
		_ = xml.EscapeText(sb, []byte(attr.Value))
		sb.WriteByte('"')
	}

	if len(n.Children) == 0 {
		sb.WriteString("/>")
		return
	}

	sb.WriteByte('>')
	for _, child := range n.Children {
		writeNode(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(qualifiedName(n.Name))
	sb.WriteByte('>')
}

func qualifiedName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if prefix, ok := namespacePrefixes[name.Space]; ok {
		return prefix + ":" + name.Local
	}
	// An unresolved space is a bare prefix the decoder could not bind
	if !strings.ContainsAny(name.Space, "/:") {
		return name.Space + ":" + name.Local
	}
	return name.Local
}

func qualifiedAttrName(name xml.Name) string {
	// Namespace declarations survive the decoder with the literal
	// "xmlns" space and must be re-emitted as declarations
	if name.Space == "xmlns" {
		return "xmlns:" + name.Local
	}
	if name.Space == "" && name.Local == "xmlns" {
		return "xmlns"
	}
	return qualifiedName(name)
}
