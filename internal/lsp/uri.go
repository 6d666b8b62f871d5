package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
)

// UriToPath returns the local path of a file:// URI. Other schemes, such as
// unsaved editor buffers, yield the URI's path so the file extension can
// still pick the analysis.
func UriToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	if !strings.EqualFold(u.Scheme, "file") {
		if u.Opaque != "" {
			return u.Opaque
		}
		return u.Path
	}
	return filepath.FromSlash(u.Path)
}

func PathToURI(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
