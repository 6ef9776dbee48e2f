package reportdoc

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	relationshipIDPrefix  = "rId"
	imageRelationshipType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// Manifest owns the sidecar relationship file of a document part. It hands
// out ids that are unique within the part and rejects collisions instead of
// silently overwriting an existing mapping.
type Manifest struct {
	rels   Relationships
	nextID int
}

// LoadRelationships parses the relationship manifest at path. The id
// counter is seeded above the highest numeric id already present, so ids
// allocated later can never collide with the template's own.
func LoadRelationships(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewMarkupError(path, err)
	}

	m := &Manifest{}
	if err := xml.Unmarshal(data, &m.rels); err != nil {
		return nil, NewMarkupError(path, err)
	}

	maxID := 0
	for _, rel := range m.rels.Relationship {
		if !strings.HasPrefix(rel.ID, relationshipIDPrefix) {
			continue
		}
		if id, err := strconv.Atoi(rel.ID[len(relationshipIDPrefix):]); err == nil && id > maxID {
			maxID = id
		}
	}
	m.nextID = maxID + 1

	return m, nil
}

// AllocateID returns the next manifest-unique relationship id.
func (m *Manifest) AllocateID() string {
	id := fmt.Sprintf("%s%d", relationshipIDPrefix, m.nextID)
	m.nextID++
	return id
}

// Has reports whether an id is already mapped.
func (m *Manifest) Has(id string) bool {
	for _, rel := range m.rels.Relationship {
		if rel.ID == id {
			return true
		}
	}
	return false
}

// Add inserts a new id-to-target mapping of the given relationship type.
func (m *Manifest) Add(id, target, relType string) error {
	if m.Has(id) {
		return NewDuplicateIDError(id)
	}
	m.rels.Relationship = append(m.rels.Relationship, Relationship{
		ID:     id,
		Type:   relType,
		Target: target,
	})
	return nil
}

// Target returns the target path mapped to id and whether it was present.
func (m *Manifest) Target(id string) (string, bool) {
	for _, rel := range m.rels.Relationship {
		if rel.ID == id {
			return rel.Target, true
		}
	}
	return "", false
}

// Len returns the number of mappings in the manifest.
func (m *Manifest) Len() int {
	return len(m.rels.Relationship)
}

// Save serializes the manifest back to its XML form at path.
func (m *Manifest) Save(path string) error {
	data, err := xml.Marshal(&m.rels)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xmlHeader), data...), 0o644)
}
