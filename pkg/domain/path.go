package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Path addresses a prim on a stage. Paths are absolute and slash-delimited;
// "/" is the pseudo-root that every stage has.
type Path string

// RootPath is the pseudo-root of every stage.
const RootPath Path = "/"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParsePath validates raw and returns it as a Path.
// Trailing slashes are not allowed, except for the root itself.
func ParsePath(raw string) (Path, error) {
	raw = strings.TrimSpace(raw)
	if raw == string(RootPath) {
		return RootPath, nil
	}
	if !strings.HasPrefix(raw, "/") {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidPath, raw)
	}
	for _, segment := range strings.Split(raw[1:], "/") {
		if !IsValidIdentifier(segment) {
			return "", fmt.Errorf("%w: bad segment %q in %q", ErrInvalidPath, segment, raw)
		}
	}
	return Path(raw), nil
}

// MustParsePath is like ParsePath but panics on error. Intended for tests and literals.
func MustParsePath(raw string) Path {
	p, err := ParsePath(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePaths parses every entry, returning the ones that are valid and the
// raw strings that were rejected.
func ParsePaths(raw []string) (valid []Path, rejected []string) {
	valid = make([]Path, 0, len(raw))
	for _, r := range raw {
		p, err := ParsePath(r)
		if err != nil {
			rejected = append(rejected, r)
			continue
		}
		valid = append(valid, p)
	}
	return valid, rejected
}

// IsValidIdentifier reports whether name can be used as a single path segment.
func IsValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// String implements fmt.Stringer.
func (p Path) String() string { return string(p) }

// IsRoot reports whether p is the pseudo-root.
func (p Path) IsRoot() bool { return p == RootPath }

// Name returns the last segment of p. The root has an empty name.
func (p Path) Name() string {
	if p.IsRoot() || p == "" {
		return ""
	}
	s := string(p)
	return s[strings.LastIndex(s, "/")+1:]
}

// Parent returns the path one level up. The parent of a top-level prim is the root,
// and the root is its own parent.
func (p Path) Parent() Path {
	if p.IsRoot() || p == "" {
		return RootPath
	}
	s := string(p)
	idx := strings.LastIndex(s, "/")
	if idx <= 0 {
		return RootPath
	}
	return Path(s[:idx])
}

// Child appends a segment to p.
func (p Path) Child(name string) Path {
	if p.IsRoot() || p == "" {
		return Path("/" + name)
	}
	return Path(string(p) + "/" + name)
}

// Depth returns the number of segments; the root has depth 0.
func (p Path) Depth() int {
	if p.IsRoot() || p == "" {
		return 0
	}
	return strings.Count(string(p), "/")
}

// HasPrefix reports whether p equals prefix or lives below it.
func (p Path) HasPrefix(prefix Path) bool {
	if prefix.IsRoot() {
		return true
	}
	return p == prefix || strings.HasPrefix(string(p), string(prefix)+"/")
}

// ReplacePrefix re-roots p from oldPrefix onto newPrefix.
// It returns p unchanged if p is not under oldPrefix.
func (p Path) ReplacePrefix(oldPrefix, newPrefix Path) Path {
	if !p.HasPrefix(oldPrefix) {
		return p
	}
	rest := strings.TrimPrefix(string(p), string(oldPrefix))
	if oldPrefix.IsRoot() {
		rest = string(p)
	}
	if newPrefix.IsRoot() {
		if rest == "" {
			return RootPath
		}
		return Path(rest)
	}
	return Path(string(newPrefix) + rest)
}
