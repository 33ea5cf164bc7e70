package catalog

import (
	"io/fs"
	"path"
	"sort"
	"strings"
)

// IconResolver finds icon assets whose file names start with a weather code,
// e.g. 10000_clear_large.png for code 10000.
type IconResolver struct {
	fsys    fs.FS
	urlBase string
}

// NewIconResolver serves names from the root of fsys and prefixes results
// with urlBase.
func NewIconResolver(fsys fs.FS, urlBase string) *IconResolver {
	return &IconResolver{fsys: fsys, urlBase: strings.TrimSuffix(urlBase, "/")}
}

// Resolve returns the first matching asset in lexical order. A missing
// directory or no match both report false.
func (r *IconResolver) Resolve(code string) (string, bool) {
	if r == nil || r.fsys == nil || !isNumeric(code) {
		return "", false
	}

	matches, err := fs.Glob(r.fsys, code+"*.png")
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)

	if r.urlBase == "" {
		return matches[0], true
	}
	return path.Join(r.urlBase, matches[0]), true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
