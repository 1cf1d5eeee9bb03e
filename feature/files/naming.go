package files

import (
	"path"
	"strings"
	"unicode"
)

// sanitizeName turns a client supplied name into an object key: every
// whitespace rune becomes '_', backslashes become '/', and the path is cleaned
// so it cannot climb above the bucket root. It returns "" when nothing usable
// remains.
func sanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		if r == '\\' {
			return '/'
		}
		return r
	}, name)

	cleaned := strings.TrimPrefix(path.Clean("/"+name), "/")
	if cleaned == "" || cleaned == "." {
		return ""
	}
	return cleaned
}
