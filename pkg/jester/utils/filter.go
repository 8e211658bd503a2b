package utils

import "strings"

// StringFilter matches exact strings, e.g. strategy names. An empty filter
// matches everything unless it was made strict.
type StringFilter struct {
	emptyIsAny bool
	contents   map[string]bool
}

func NewStringFilterFromSlice(slice []string) *StringFilter {
	contents := make(map[string]bool)
	for _, item := range slice {
		contents[item] = true
	}

	return &StringFilter{emptyIsAny: true, contents: contents}
}

// Force the filter to match nothing if it is empty.
func (f *StringFilter) SetStrict() {
	f.emptyIsAny = false
}

func (f *StringFilter) Match(item string) bool {
	if len(f.contents) == 0 {
		return f.emptyIsAny
	}

	return f.contents[item]
}

// PathFilter matches slash separated paths such as "suite/context". When
// recursive, an entry also matches every path below it.
type PathFilter struct {
	emptyIsAny bool
	recursive  bool
	contents   map[string]bool
}

func NewPathFilterFromSlice(slice []string, recursive bool) *PathFilter {
	contents := make(map[string]bool)
	for _, item := range slice {
		item = strings.Trim(item, "/")
		if item != "" {
			contents[item] = true
		}
	}

	return &PathFilter{emptyIsAny: true, recursive: recursive, contents: contents}
}

// Force the filter to match nothing if it is empty.
func (f *PathFilter) SetStrict() {
	f.emptyIsAny = false
}

func (f *PathFilter) Empty() bool {
	return len(f.contents) == 0
}

func (f *PathFilter) Match(item string) bool {
	if len(f.contents) == 0 {
		return f.emptyIsAny
	}

	if !f.recursive {
		return f.contents[item]
	}

	for path := range f.contents {
		if pathIsBase(path, item) {
			return true
		}
	}

	return false
}

// Returns whether `base` is a base of `path`.
//
// For example:
//
//	pathIsBase("suite", "suite/context") == true
//	pathIsBase("suite/context", "suite/context") == true
//	pathIsBase("suite/context", "suite") == false
//	pathIsBase("suite", "suite2/context") == false
func pathIsBase(base, path string) bool {
	if !strings.HasPrefix(path, base) {
		return false
	}

	baseComponents := strings.Split(base, "/")
	pathComponents := strings.Split(path, "/")

	if len(baseComponents) > len(pathComponents) {
		return false
	}

	for i, baseComponent := range baseComponents {
		if baseComponent != pathComponents[i] {
			return false
		}
	}

	return true
}
