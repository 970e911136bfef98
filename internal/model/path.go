package model

import (
	"fmt"
	"strings"
)

// PathSeparator joins path segments in fact files and reports.
const PathSeparator = "."

// Path is an ordered sequence of identifiers below a crate root.
type Path []string

// ParsePath splits a dot-delimited string and trims every segment. The
// empty string yields an empty path.
func ParsePath(value string) Path {
	if strings.TrimSpace(value) == "" {
		return Path{}
	}

	segments := strings.Split(value, PathSeparator)
	for i, segment := range segments {
		segments[i] = strings.TrimSpace(segment)
	}

	return Path(segments)
}

func (p Path) String() string {
	return strings.Join(p, PathSeparator)
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}

	return p[:len(p)-1]
}

// Last returns the final segment, or "" for the empty path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}

	return p[len(p)-1]
}

// MalformedPathError is the fatal structural error raised while building a graph.
type MalformedPathError struct {
	Path   string
	Root   Root
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed path %q in %s root: %s", e.Path, e.Root, e.Reason)
}

// FilePath is a location on the local filesystem, kept distinct from module paths.
type FilePath string
