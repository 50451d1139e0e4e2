package facerelay

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsValidFileName validates that a submitted file name can be stored as a
// single entry in the upload directory. It checks that the name:
//   - is not empty, "." or ".."
//   - contains no path separators (/ or \)
//   - is valid UTF-8
//   - contains no null bytes, control characters (< 0x20) or DEL (0x7f)
//
// Spaces and other printable characters are accepted as submitted.
func IsValidFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	if strings.ContainsAny(name, `/\`) {
		return false
	}

	if !utf8.ValidString(name) {
		return false
	}

	for _, r := range name {
		if r == 0 || r < 0x20 || r == 0x7f || (unicode.IsSpace(r) && r != ' ') {
			return false
		}
	}

	return true
}
