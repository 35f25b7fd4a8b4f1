package matcher

import "strings"

// JoinURL joins a base URL and a path with exactly one slash between them.
// An empty path yields "" and an empty base yields path unchanged.
func JoinURL(base, path string) string {
	if path == "" {
		return ""
	}
	if base == "" {
		return path
	}
	baseSlash := strings.HasSuffix(base, "/")
	pathSlash := strings.HasPrefix(path, "/")
	switch {
	case baseSlash && pathSlash:
		return base[:len(base)-1] + path
	case !baseSlash && !pathSlash:
		return base + "/" + path
	}
	return base + path
}

// isAbsolute reports whether location already names a scheme and host.
func isAbsolute(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
