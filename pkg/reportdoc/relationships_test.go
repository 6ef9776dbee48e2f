package reportdoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeRelsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "document.xml.rels")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write rels file: %v", err)
	}
	return path
}

func TestLoadRelationshipsSeedsCounterAboveExisting(t *testing.T) {
	m, err := LoadRelationships(writeRelsFile(t, testRelationshipsXML))
	if err != nil {
		t.Fatalf("LoadRelationships failed: %v", err)
	}

	// Highest pre-existing id is rId4
	if id := m.AllocateID(); id != "rId5" {
		t.Errorf("first allocated id = %q, want rId5", id)
	}
	if id := m.AllocateID(); id != "rId6" {
		t.Errorf("second allocated id = %q, want rId6", id)
	}
}

func TestLoadRelationshipsIgnoresForeignIDs(t *testing.T) {
	rels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="custom1" Type="t" Target="a.xml"/>` +
		`</Relationships>`

	m, err := LoadRelationships(writeRelsFile(t, rels))
	if err != nil {
		t.Fatalf("LoadRelationships failed: %v", err)
	}
	if id := m.AllocateID(); id != "rId1" {
		t.Errorf("allocated id = %q, want rId1", id)
	}
}

func TestLoadRelationshipsMalformed(t *testing.T) {
	_, err := LoadRelationships(writeRelsFile(t, "<Relationships"))
	if err == nil {
		t.Fatal("expected error for malformed manifest")
	}
	if !IsMarkupError(err) {
		t.Errorf("error = %v, want markup error", err)
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	m, err := LoadRelationships(writeRelsFile(t, testRelationshipsXML))
	if err != nil {
		t.Fatalf("LoadRelationships failed: %v", err)
	}

	if err := m.Add("rId4", "media/image2.png", imageRelationshipType); err == nil {
		t.Fatal("expected duplicate id error, got nil")
	} else if !IsDuplicateIDError(err) {
		t.Errorf("error = %v, want duplicate id error", err)
	}

	id := m.AllocateID()
	if err := m.Add(id, "media/image2.png", imageRelationshipType); err != nil {
		t.Fatalf("Add of fresh id failed: %v", err)
	}
	if err := m.Add(id, "media/image3.png", imageRelationshipType); !IsDuplicateIDError(err) {
		t.Errorf("re-adding %s: error = %v, want duplicate id error", id, err)
	}
}

func TestManifestSaveRoundTrip(t *testing.T) {
	path := writeRelsFile(t, testRelationshipsXML)
	m, err := LoadRelationships(path)
	if err != nil {
		t.Fatalf("LoadRelationships failed: %v", err)
	}

	id := m.AllocateID()
	if err := m.Add(id, "media/image5.png", imageRelationshipType); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := m.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := LoadRelationships(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if diff := cmp.Diff(m.rels.Relationship, reloaded.rels.Relationship); diff != "" {
		t.Errorf("relationships changed across save/load (-want +got):\n%s", diff)
	}
	if target, ok := reloaded.Target(id); !ok || target != "media/image5.png" {
		t.Errorf("Target(%s) = %q, %v; want media/image5.png, true", id, target, ok)
	}
	// The reloaded counter must keep allocating past the saved ids
	if next := reloaded.AllocateID(); next != "rId6" {
		t.Errorf("next id after reload = %q, want rId6", next)
	}
}
