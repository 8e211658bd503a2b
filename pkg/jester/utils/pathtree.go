package utils

import "strings"

// PathTree is a nested map of path segments. It marshals to JSON as a tree of
// objects, with leaves as empty objects.
type PathTree map[string]any

func NewPathTree() PathTree {
	return make(PathTree)
}

// Adds every segment of a slash separated path.
func (t PathTree) Add(path string) {
	t.AddSegments(strings.Split(path, "/")...)
}

// Adds a path given as separate segments. Segments may contain slashes.
func (t PathTree) AddSegments(segments ...string) {
	current := t
	for _, segment := range segments {
		next, ok := current[segment].(PathTree)
		if !ok {
			next = make(PathTree)
			current[segment] = next
		}
		current = next
	}
}

func (t PathTree) Contains(path string) bool {
	current := t
	for _, segment := range strings.Split(path, "/") {
		next, ok := current[segment].(PathTree)
		if !ok {
			return false
		}
		current = next
	}

	return true
}
