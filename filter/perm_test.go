package filter

import (
	"io/fs"
	"testing"

	"github.com/eztools-go/findutil/objects"
)

func TestParseMode(t *testing.T) {
	for _, test := range []struct {
		Mode string
		Bits uint32
	}{
		{"744", 0o744},
		{"0", 0},
		{"u=rwx", 0o700},
		{"u=rx", 0o500},
		{"g=w", 0o020},
		{"o=x", 0o001},
		{"a=r", 0o004},
		{"u=r,g=r,o=x,u=wx", 0o741},
		{"u=rwx,g=rx,o=rx", 0o755},
	} {
		t.Run(test.Mode, func(t *testing.T) {
			bits, err := parseMode(test.Mode)
			if err != nil {
				t.Fatalf("Expected no error but got %v", err)
			}
			if bits != test.Bits {
				t.Fatalf("Expected %o but got %o", test.Bits, bits)
			}
		})
	}
}

func TestParseModeErrors(t *testing.T) {
	for _, mode := range []string{"", "abc", "u+rwx", "999"} {
		if _, err := parseMode(mode); err == nil {
			t.Fatalf("Expected an error for mode %q", mode)
		}
	}
}

func TestPermFilter(t *testing.T) {
	cfg := NewConfig()
	for _, test := range []struct {
		Token   string
		Mode    uint32
		Matches bool
	}{
		// Exact comparison.
		{"744", 0o744, true},
		{"744", 0o745, false},
		{"740", 0o744, false},

		// All requested bits must be set.
		{"-744", 0o744, true},
		{"-744", 0o745, false},
		{"-740", 0o744, true},
		{"-766", 0o744, false},

		// Any requested bit suffices; a zero mask always matches.
		{"/744", 0o744, true},
		{"/744", 0o700, true},
		{"/066", 0o700, false},
		{"/0", 0o700, true},
		{"+066", 0o704, true},

		// Symbolic modes.
		{"u=rx", 0o500, true},
		{"u=rx", 0o700, false},
		{"-u=rx", 0o700, true},
	} {
		t.Run(test.Token, func(t *testing.T) {
			perm, err := NewPerm(NewArgs([]string{test.Token}), cfg)
			if err != nil {
				t.Fatalf("Expected no error but got %v", err)
			}
			file := fakeFile("/a", objects.FileInfo{Lmode: fs.FileMode(test.Mode)})
			got, err := perm.Filter(file)
			if err != nil {
				t.Fatalf("Expected no error but got %v", err)
			}
			if got != test.Matches {
				t.Fatalf("Expected %v for mode %o against %s but got %v",
					test.Matches, test.Mode, test.Token, got)
			}
		})
	}
}
