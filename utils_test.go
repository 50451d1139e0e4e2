package facerelay_test

import (
	"testing"
	"unicode/utf8"

	"github.com/sagarc03/facerelay"
)

func TestIsValidFileName(t *testing.T) {
	invalidUTF8 := string([]byte{'a', 0xff, 'b', '.', 'p', 'n', 'g'})

	tt := []struct {
		Name     string
		FileName string
		Want     bool
	}{
		// Basics
		{Name: "empty name", FileName: "", Want: false},
		{Name: "single dot", FileName: ".", Want: false},
		{Name: "double dot", FileName: "..", Want: false},

		// Separators
		{Name: "relative path", FileName: "../image.png", Want: false},
		{Name: "nested path", FileName: "a/image.png", Want: false},
		{Name: "absolute path", FileName: "/etc/passwd", Want: false},
		{Name: "backslash", FileName: `a\image.png`, Want: false},

		// Control chars / NUL
		{Name: "contains NUL", FileName: "ima\x00ge.png", Want: false},
		{Name: "contains DEL", FileName: "ima\x7fge.png", Want: false},
		{Name: "contains control char", FileName: "ima\x1fge.png", Want: false},
		{Name: "contains tab", FileName: "ima\tge.png", Want: false},
		{Name: "contains newline", FileName: "image.png\n", Want: false},

		// UTF-8 validity
		{Name: "invalid utf8", FileName: invalidUTF8, Want: false},

		// Valid examples
		{Name: "client default", FileName: "image.png", Want: true},
		{Name: "no extension", FileName: "capture", Want: true},
		{Name: "hidden file", FileName: ".capture.png", Want: true},
		{Name: "dots inside", FileName: "frame..1.png", Want: true},
		{Name: "space", FileName: "my image.png", Want: true},
		{Name: "unicode", FileName: "снимок.png", Want: true},
	}

	if utf8.ValidString(invalidUTF8) {
		t.Fatalf("test setup error: invalidUTF8 is unexpectedly valid")
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			got := facerelay.IsValidFileName(tc.FileName)
			if got != tc.Want {
				expected := "valid"
				if !tc.Want {
					expected = "invalid"
				}
				t.Errorf("expected file name %q to be %s, got %v", tc.FileName, expected, got)
			}
		})
	}
}
