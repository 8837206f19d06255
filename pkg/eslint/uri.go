package eslint

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const fileScheme = "file"

// PathFromURI converts a file:// document URI to a file system path.
func PathFromURI(uri string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse uri %q: %w", uri, err)
	}
	if parsed.Scheme != fileScheme {
		return "", fmt.Errorf("unsupported uri scheme %q in %q", parsed.Scheme, uri)
	}
	path := parsed.Path
	// file:///C:/x on Windows.
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

// URIFromPath converts an absolute file system path to a file:// URI.
func URIFromPath(path string) string {
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return (&url.URL{Scheme: fileScheme, Path: slashed}).String()
}
