package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/young1lin/label-layout/labels"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "labels.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen(t *testing.T) {
	db := openTemp(t)

	var tableName string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='labels'").Scan(&tableName)
	if err != nil {
		t.Errorf("labels table was not created: %v", err)
	}
}

func TestOpenInvalidPath(t *testing.T) {
	_, err := Open("/invalid/path/that/cannot/be/created/test.db")
	if err == nil {
		t.Error("Expected error when opening invalid path, got nil")
	}
}

func TestReplaceAndLoadSet(t *testing.T) {
	db := openTemp(t)

	first := []labels.Label{{ID: "b", Name: "Bee"}, {ID: "a", Name: "Ay"}, {ID: "c", Name: "Sea"}}
	if err := db.ReplaceSet(DefaultSet, first); err != nil {
		t.Fatalf("ReplaceSet() error = %v", err)
	}

	got, err := db.LoadSet(DefaultSet)
	if err != nil {
		t.Fatalf("LoadSet() error = %v", err)
	}
	if !reflect.DeepEqual(got, first) {
		t.Errorf("LoadSet() = %+v, want %+v", got, first)
	}

	// Replacing drops labels that are no longer present.
	second := []labels.Label{{ID: "z", Name: "Zed"}}
	if err := db.ReplaceSet(DefaultSet, second); err != nil {
		t.Fatalf("ReplaceSet() error = %v", err)
	}
	got, _ = db.LoadSet(DefaultSet)
	if !reflect.DeepEqual(got, second) {
		t.Errorf("LoadSet() after replace = %+v, want %+v", got, second)
	}
}

func TestReplaceSetDuplicateIDs(t *testing.T) {
	db := openTemp(t)

	list := []labels.Label{{ID: "a", Name: "first"}, {ID: "b", Name: "B"}, {ID: "a", Name: "again"}}
	if err := db.ReplaceSet("dups", list); err != nil {
		t.Fatalf("ReplaceSet() error = %v", err)
	}
	got, _ := db.LoadSet("dups")
	want := []labels.Label{{ID: "a", Name: "again"}, {ID: "b", Name: "B"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadSet() = %+v, want %+v", got, want)
	}
}

func TestLoadUnknownSet(t *testing.T) {
	db := openTemp(t)
	got, err := db.LoadSet("missing")
	if err != nil {
		t.Fatalf("LoadSet() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("LoadSet(missing) = %+v, want empty", got)
	}
}

func TestListAndDeleteSets(t *testing.T) {
	db := openTemp(t)
	_ = db.ReplaceSet("one", []labels.Label{{ID: "a", Name: "A"}})
	_ = db.ReplaceSet("two", []labels.Label{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})

	sets, err := db.ListSets()
	if err != nil {
		t.Fatalf("ListSets() error = %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("ListSets() returned %d sets, want 2", len(sets))
	}
	counts := map[string]int{}
	for _, s := range sets {
		counts[s.Name] = s.Count
		if s.UpdatedAt.IsZero() {
			t.Errorf("set %q has zero UpdatedAt", s.Name)
		}
	}
	if counts["one"] != 1 || counts["two"] != 2 {
		t.Errorf("counts = %v, want one:1 two:2", counts)
	}

	if err := db.DeleteSet("one"); err != nil {
		t.Fatalf("DeleteSet() error = %v", err)
	}
	sets, _ = db.ListSets()
	if len(sets) != 1 || sets[0].Name != "two" {
		t.Errorf("ListSets() after delete = %+v", sets)
	}
}
