package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryFileSystem_CreateAndRead(t *testing.T) {
	m := NewMemoryFileSystem()

	w, err := m.Create("out/report.md")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("hello ")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := w.Write([]byte("world")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := m.ReadFile("out/report.md")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("got %q, want %q", data, "hello world")
	}
}

func TestMemoryFileSystem_ReadMissing(t *testing.T) {
	m := NewMemoryFileSystem()
	if _, err := m.ReadFile("nope"); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestMemoryFileSystem_WriteFileCopies(t *testing.T) {
	m := NewMemoryFileSystem()
	data := []byte("abc")
	if err := m.WriteFile("a.txt", data, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data[0] = 'z'

	got, _ := m.ReadFile("a.txt")
	if string(got) != "abc" {
		t.Errorf("stored data aliased caller slice: %q", got)
	}
}

func TestMemoryFileSystem_MkdirAllAndExists(t *testing.T) {
	m := NewMemoryFileSystem()
	if err := m.MkdirAll("a/b/c", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	for _, p := range []string{"a", "a/b", "a/b/c"} {
		if !m.Exists(p) {
			t.Errorf("expected %s to exist", p)
		}
	}
	if m.Exists("a/x") {
		t.Error("a/x should not exist")
	}
}

func TestMemoryFileSystem_FilesUnder(t *testing.T) {
	m := NewMemoryFileSystem()
	_ = m.WriteFile("out/b.png", nil, 0644)
	_ = m.WriteFile("out/a.md", nil, 0644)
	_ = m.WriteFile("other/c.md", nil, 0644)

	got := m.FilesUnder("out")
	want := []string{filepath.Join("out", "a.md"), filepath.Join("out", "b.png")}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestOSFileSystem_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	var fsys FileSystem = OSFileSystem{}

	sub := filepath.Join(dir, "nested", "out")
	if err := fsys.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	path := filepath.Join(sub, "x.txt")
	if err := fsys.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !fsys.Exists(path) {
		t.Fatal("expected file to exist")
	}

	w, err := fsys.Create(filepath.Join(sub, "y.txt"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, _ = w.Write([]byte("y"))
	_ = w.Close()

	got, err := fsys.ReadFile(filepath.Join(sub, "y.txt"))
	if err != nil || string(got) != "y" {
		t.Errorf("ReadFile = %q, %v", got, err)
	}
}
