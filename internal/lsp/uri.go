package lsp

import (
	"net/url"
	"path/filepath"
)

// uriToPath converts a file:// URI into an absolute filesystem path.
// Some clients send bare paths instead of URIs; those pass through.
// Foreign schemes and unparseable input map to "".
func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	path := ""
	switch parsed.Scheme {
	case "file":
		path = parsed.Path
	case "":
		path = uri
	default:
		return ""
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	return canonicalPath(path)
}

// pathToURI is the inverse. Workspace snapshot keys are already
// absolute; the canonicalization only matters for loose input.
func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(canonicalPath(path))}
	return u.String()
}

func canonicalPath(path string) string {
	path = filepath.FromSlash(path)
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
