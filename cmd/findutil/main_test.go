package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitLeadingOptions(t *testing.T) {
	for _, test := range []struct {
		Args    []string
		Leading []string
		Rest    []string
	}{
		{[]string{"-H", "-L", "/tmp"}, []string{"-H", "-L"}, []string{"/tmp"}},
		{[]string{"-D", "stat", "/tmp"}, []string{"-D", "stat"}, []string{"/tmp"}},
		{[]string{"-O2", "/tmp"}, []string{"-O2"}, []string{"/tmp"}},
		{[]string{"/tmp", "-name", "x"}, nil, []string{"/tmp", "-name", "x"}},
		{nil, nil, nil},
	} {
		leading, rest := splitLeadingOptions(test.Args)
		if strings.Join(leading, " ") != strings.Join(test.Leading, " ") {
			t.Fatalf("Expected leading %v but got %v", test.Leading, leading)
		}
		if strings.Join(rest, " ") != strings.Join(test.Rest, " ") {
			t.Fatalf("Expected rest %v but got %v", test.Rest, rest)
		}
	}
}

func TestSplitStartingPoints(t *testing.T) {
	for _, test := range []struct {
		Args   []string
		Points []string
		Exprs  []string
	}{
		{[]string{"/a", "/b", "-name", "x"}, []string{"/a", "/b"}, []string{"-name", "x"}},
		{[]string{"-name", "x"}, nil, []string{"-name", "x"}},
		{[]string{"/a", "(", "-true", ")"}, []string{"/a"}, []string{"(", "-true", ")"}},
		{[]string{"/a", "!", "-false"}, []string{"/a"}, []string{"!", "-false"}},
		{[]string{"/a", "/b"}, []string{"/a", "/b"}, nil},
	} {
		points, exprs := splitStartingPoints(test.Args)
		if strings.Join(points, " ") != strings.Join(test.Points, " ") {
			t.Fatalf("Expected points %v but got %v", test.Points, points)
		}
		if strings.Join(exprs, " ") != strings.Join(test.Exprs, " ") {
			t.Fatalf("Expected exprs %v but got %v", test.Exprs, exprs)
		}
	}
}

func TestEntryFindsByName(t *testing.T) {
	root := filepath.Join(t.TempDir(), "root")
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	target := filepath.Join(root, "sub", "wanted.txt")
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "other.txt"), nil, 0o644); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}

	var stdout, stderr bytes.Buffer
	status := entry([]string{root, "-name", "wanted.txt"}, &stdout, &stderr)
	if status != 0 {
		t.Fatalf("Expected status 0 but got %d: %s", status, stderr.String())
	}
	if stdout.String() != target+"\n" {
		t.Fatalf("Expected %q but got %q", target+"\n", stdout.String())
	}
}

func TestEntryVersionAndHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if status := entry([]string{"--version"}, &stdout, &stderr); status != 0 {
		t.Fatalf("Expected status 0 but got %d", status)
	}
	if !strings.HasPrefix(stdout.String(), "findutil ") {
		t.Fatalf("Expected a version banner but got %q", stdout.String())
	}

	stdout.Reset()
	if status := entry([]string{"-help"}, &stdout, &stderr); status != 0 {
		t.Fatalf("Expected status 0 but got %d", status)
	}
	if !strings.HasPrefix(stdout.String(), "usage:") {
		t.Fatalf("Expected the usage text but got %q", stdout.String())
	}
}

func TestEntryRejectsUnknownPredicate(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if status := entry([]string{".", "-frobnicate"}, &stdout, &stderr); status != 1 {
		t.Fatalf("Expected status 1 but got %d", status)
	}
}
