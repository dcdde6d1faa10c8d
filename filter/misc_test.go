package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eztools-go/findutil/objects"
)

func TestEmptyFilter(t *testing.T) {
	cfg := NewConfig()
	empty := NewEmpty(cfg)

	got, err := empty.Filter(fakeFile("/a", objects.FileInfo{Lsize: 0}))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if !got {
		t.Fatalf("Expected a zero-size file to match")
	}

	got, err = empty.Filter(fakeFile("/b", objects.FileInfo{Lsize: 1}))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if got {
		t.Fatalf("Expected a non-empty file not to match")
	}
}

func TestInodeAndHardLinks(t *testing.T) {
	cfg := NewConfig()

	inode, err := NewInode(NewArgs([]string{"42"}), cfg)
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	got, err := inode.Filter(fakeFile("/a", objects.FileInfo{Lino: 42}))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if !got {
		t.Fatalf("Expected inode 42 to match")
	}

	links, err := NewHardLinks(NewArgs([]string{"+1"}), cfg)
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	got, err = links.Filter(fakeFile("/a", objects.FileInfo{Lnlink: 2}))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if !got {
		t.Fatalf("Expected 2 links to match +1")
	}
	got, err = links.Filter(fakeFile("/a", objects.FileInfo{Lnlink: 1}))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if got {
		t.Fatalf("Expected 1 link not to match +1")
	}
}

func TestAccessible(t *testing.T) {
	tmp := t.TempDir()
	plain := filepath.Join(tmp, "plain")
	if err := os.WriteFile(plain, nil, 0o644); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	script := filepath.Join(tmp, "script")
	if err := os.WriteFile(script, nil, 0o755); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}

	got, err := NewReadable().Filter(NewFile(plain, "/", 0, false))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if !got {
		t.Fatalf("Expected a 644 file to be readable")
	}

	got, err = NewExecutable().Filter(NewFile(script, "/", 0, false))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if !got {
		t.Fatalf("Expected a 755 file to be executable")
	}

	got, err = NewExecutable().Filter(NewFile(plain, "/", 0, false))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if got {
		t.Fatalf("Expected a 644 file not to be executable")
	}
}

func TestSameFile(t *testing.T) {
	tmp := t.TempDir()
	original := filepath.Join(tmp, "original")
	if err := os.WriteFile(original, nil, 0o644); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	hardlink := filepath.Join(tmp, "hardlink")
	if err := os.Link(original, hardlink); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	other := filepath.Join(tmp, "other")
	if err := os.WriteFile(other, nil, 0o644); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}

	cfg := NewConfig()
	sameFile, err := NewSameFile(NewArgs([]string{original}), cfg)
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}

	got, err := sameFile.Filter(NewFile(hardlink, "/", 0, false))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if !got {
		t.Fatalf("Expected a hard link to be the same file")
	}

	got, err = sameFile.Filter(NewFile(other, "/", 0, false))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if got {
		t.Fatalf("Expected a distinct file not to match")
	}

	if _, err := NewSameFile(NewArgs([]string{filepath.Join(tmp, "missing")}), cfg); err == nil {
		t.Fatalf("Expected an error for a missing reference file")
	}
}
