package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDirectoryFiltersAndOrders(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("b.txt", "second")
	write("a.txt", "first")
	write("notes.exe", "unsupported")
	write(".hidden.txt", "hidden")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	docs, err := LoadDirectory(dir, nil)
	if err != nil {
		t.Fatalf("LoadDirectory() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].Filename != "a.txt" || docs[1].Filename != "b.txt" {
		t.Fatalf("order = %q, %q", docs[0].Filename, docs[1].Filename)
	}
	if string(docs[0].Content) != "first" {
		t.Fatalf("content = %q", docs[0].Content)
	}
}

func TestLoadFileUnsupported(t *testing.T) {
	if _, err := LoadFile("resume.xyz"); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}
