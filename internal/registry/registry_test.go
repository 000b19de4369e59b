package registry

import (
	"errors"
	"testing"
	"time"
)

func record(id, name string, size int64) FileRecord {
	return FileRecord{ID: id, Name: name, Size: size, CreatedAt: time.Now().UTC(), BlobKey: "blob-" + id}
}

func TestInsertListOrder(t *testing.T) {
	reg := New()
	for _, id := range []string{"c", "a", "b"} {
		if err := reg.Insert(record(id, id+".txt", 1)); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	got := reg.List()
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	for i, want := range []string{"c", "a", "b"} {
		if got[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, got[i].ID)
		}
	}
}

func TestInsertDuplicateID(t *testing.T) {
	reg := New()
	if err := reg.Insert(record("x", "x.txt", 1)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := reg.Insert(record("x", "other.txt", 2)); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 record after duplicate insert, got %d", reg.Len())
	}
}

func TestInsertEmptyID(t *testing.T) {
	reg := New()
	if err := reg.Insert(FileRecord{Name: "x.txt"}); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestLookup(t *testing.T) {
	reg := New()
	if err := reg.Insert(record("a", "a.txt", 10)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rec, err := reg.Lookup("a")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.Name != "a.txt" || rec.Size != 10 {
		t.Fatalf("unexpected record: %#v", rec)
	}

	if _, err := reg.Lookup("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveIdempotentFailure(t *testing.T) {
	reg := New()
	if err := reg.Insert(record("a", "a.txt", 10)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := reg.Remove("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := reg.Remove("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second remove: expected ErrNotFound, got %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry, got %d records", reg.Len())
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	reg := New()
	for _, id := range []string{"a", "b", "c"} {
		if err := reg.Insert(record(id, id+".txt", 1)); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}
	if err := reg.Remove("b"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	got := reg.List()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("unexpected order after remove: %#v", got)
	}
}

func TestListSnapshotIsolation(t *testing.T) {
	reg := New()
	if err := reg.Insert(record("a", "a.txt", 1)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	snapshot := reg.List()
	if err := reg.Remove("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if len(snapshot) != 1 || snapshot[0].ID != "a" {
		t.Fatalf("snapshot mutated by concurrent remove: %#v", snapshot)
	}
}
