package filter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFileType(t *testing.T) {
	for _, test := range []struct {
		Token string
		Type  FileType
	}{
		{"b", FileTypeBlockDevice},
		{"c", FileTypeCharDevice},
		{"d", FileTypeDirectory},
		{"p", FileTypePipe},
		{"f", FileTypeRegular},
		{"l", FileTypeSymlink},
		{"s", FileTypeSocket},
		{"D", FileTypeDoor},
	} {
		fileType, err := ParseFileType(test.Token)
		if err != nil {
			t.Fatalf("Expected no error but got %v", err)
		}
		if fileType != test.Type {
			t.Fatalf("Expected %v for %s but got %v", test.Type, test.Token, fileType)
		}
	}

	for _, token := range []string{"x", "df", "", "F"} {
		if _, err := ParseFileType(token); err == nil {
			t.Fatalf("Expected an error for type token %q", token)
		}
	}
}

func TestTypeFilter(t *testing.T) {
	tmp := t.TempDir()
	regular := filepath.Join(tmp, "regular")
	if err := os.WriteFile(regular, nil, 0o644); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	link := filepath.Join(tmp, "link")
	if err := os.Symlink(regular, link); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}

	cfg := NewConfig()
	for _, test := range []struct {
		Token   string
		Path    string
		Matches bool
	}{
		{"f", regular, true},
		{"d", regular, false},
		{"d", tmp, true},
		{"l", link, true},
		{"f", link, false},
	} {
		t.Run(test.Token+" "+filepath.Base(test.Path), func(t *testing.T) {
			typeFilter, err := NewType(NewArgs([]string{test.Token}), cfg)
			if err != nil {
				t.Fatalf("Expected no error but got %v", err)
			}
			got, err := typeFilter.Filter(NewFile(test.Path, "/", 0, false))
			if err != nil {
				t.Fatalf("Expected no error but got %v", err)
			}
			if got != test.Matches {
				t.Fatalf("Expected %v for %s against -type %s but got %v",
					test.Matches, test.Path, test.Token, got)
			}
		})
	}
}

func TestTypeFollowsLinks(t *testing.T) {
	tmp := t.TempDir()
	regular := filepath.Join(tmp, "regular")
	if err := os.WriteFile(regular, nil, 0o644); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	link := filepath.Join(tmp, "link")
	if err := os.Symlink(regular, link); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	broken := filepath.Join(tmp, "broken")
	if err := os.Symlink(filepath.Join(tmp, "missing"), broken); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}

	cfg := NewConfig()
	cfg.LinkMode = LinkModeL

	typeFilter, err := NewType(NewArgs([]string{"f"}), cfg)
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	got, err := typeFilter.Filter(NewFile(link, "/", 0, false))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if !got {
		t.Fatalf("Expected a followed symlink to classify as its target")
	}

	// A broken symlink cannot be followed and stays a symlink.
	typeFilter, err = NewType(NewArgs([]string{"l"}), cfg)
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	got, err = typeFilter.Filter(NewFile(broken, "/", 0, false))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if !got {
		t.Fatalf("Expected a broken symlink to classify as a symlink")
	}
}

func TestXTypeInvertsFollowMode(t *testing.T) {
	tmp := t.TempDir()
	regular := filepath.Join(tmp, "regular")
	if err := os.WriteFile(regular, nil, 0o644); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	link := filepath.Join(tmp, "link")
	if err := os.Symlink(regular, link); err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}

	// Under the default no-follow mode -xtype reads through the link.
	cfg := NewConfig()
	xtype, err := NewXType(NewArgs([]string{"f"}), cfg)
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	got, err := xtype.Filter(NewFile(link, "/", 0, false))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if !got {
		t.Fatalf("Expected -xtype f to match a symlink to a regular file")
	}

	// Under -L it reads the link itself.
	followCfg := NewConfig()
	followCfg.LinkMode = LinkModeL
	xtype, err = NewXType(NewArgs([]string{"l"}), followCfg)
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	got, err = xtype.Filter(NewFile(link, "/", 0, false))
	if err != nil {
		t.Fatalf("Expected no error but got %v", err)
	}
	if !got {
		t.Fatalf("Expected -xtype l under -L to match the symlink itself")
	}
}
