package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStoreWriteOpenRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}

	handle, size, err := store.Write(context.Background(), bytes.NewBufferString("hello"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if handle == "" {
		t.Fatal("expected a handle")
	}
	if size != 5 {
		t.Fatalf("expected size 5, got %d", size)
	}

	rc, err := store.Open(context.Background(), handle)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected hello, got %q", string(data))
	}

	if err := store.Remove(context.Background(), handle); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Remove(context.Background(), handle); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second remove: expected ErrNotFound, got %v", err)
	}
	if _, err := store.Open(context.Background(), handle); !errors.Is(err, ErrNotFound) {
		t.Fatalf("open after remove: expected ErrNotFound, got %v", err)
	}
}

func TestLocalStoreIdenticalContentDistinctHandles(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}

	first, _, err := store.Write(context.Background(), bytes.NewBufferString("same bytes"))
	if err != nil {
		t.Fatalf("write first: %v", err)
	}
	second, _, err := store.Write(context.Background(), bytes.NewBufferString("same bytes"))
	if err != nil {
		t.Fatalf("write second: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct handles for identical content, both %q", first)
	}

	// Removing one must not affect the other.
	if err := store.Remove(context.Background(), first); err != nil {
		t.Fatalf("remove first: %v", err)
	}
	rc, err := store.Open(context.Background(), second)
	if err != nil {
		t.Fatalf("open second after removing first: %v", err)
	}
	rc.Close()
}

type failingReader struct{ n int }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.n > 0 {
		r.n--
		for i := range p {
			p[i] = 'x'
		}
		return len(p), nil
	}
	return 0, errors.New("stream interrupted")
}

func TestLocalStoreInterruptedWriteLeavesNoArtifact(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}

	if _, _, err := store.Write(context.Background(), &failingReader{n: 2}); err == nil {
		t.Fatal("expected write error from interrupted stream")
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "tmp" {
			t.Fatalf("unexpected published artifact %q", entry.Name())
		}
	}
	tmpEntries, err := os.ReadDir(filepath.Join(root, "tmp"))
	if err != nil {
		t.Fatalf("read tmp: %v", err)
	}
	if len(tmpEntries) != 0 {
		t.Fatalf("expected tmp to be empty, found %d entries", len(tmpEntries))
	}
}

func TestLocalStoreRejectsPathHandles(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}

	for _, handle := range []string{"", "..", "a/b", `a\b`, "tmp", "../escape"} {
		if _, err := store.Open(context.Background(), handle); err == nil || errors.Is(err, ErrNotFound) {
			t.Fatalf("handle %q: expected validation error, got %v", handle, err)
		}
		if err := store.Remove(context.Background(), handle); err == nil || errors.Is(err, ErrNotFound) {
			t.Fatalf("remove %q: expected validation error, got %v", handle, err)
		}
	}
}

func TestLocalStoreLargeStream(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}

	payload := strings.Repeat("0123456789abcdef", 64*1024) // 1 MiB
	handle, size, err := store.Write(context.Background(), strings.NewReader(payload))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if size != int64(len(payload)) {
		t.Fatalf("expected size %d, got %d", len(payload), size)
	}

	rc, err := store.Open(context.Background(), handle)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != payload {
		t.Fatal("round-tripped bytes differ")
	}
}
