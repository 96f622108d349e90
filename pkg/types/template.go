package types

// FileList is the output of file discovery: every regular file under Root.
// Paths are absolute (Root joined with the relative path).
type FileList struct {
	Root  string
	Files []string
}

// TemplateUnit is one specification file plus the content files it governs
type TemplateUnit struct {
	// RootPath is the directory holding the specification file
	RootPath string
	// SpecPath is the specification file itself
	SpecPath string
	// Specification is filled in once the spec file has been loaded
	Specification Specification
	// Files are the content files whose nearest spec ancestor is SpecPath
	Files []string
}

// AnswerSet maps placeholder keys to answers. It is shared by every unit
// of a configuration, so a key is asked for at most once.
type AnswerSet map[string]string

// Has reports whether key already has an answer
func (a AnswerSet) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// SetIfAbsent records value for key unless an answer exists; first answer wins
func (a AnswerSet) SetIfAbsent(key, value string) bool {
	if a.Has(key) {
		return false
	}
	a[key] = value
	return true
}

// TemplateConfiguration is the resolved template: every unit with its
// specification loaded, plus the answers collected so far.
type TemplateConfiguration struct {
	// Root is the scan root; destination paths are computed relative to it
	Root    string
	Units   []TemplateUnit
	Answers AnswerSet
}

// FileCount returns the number of content files across all units
func (c *TemplateConfiguration) FileCount() int {
	n := 0
	for _, u := range c.Units {
		n += len(u.Files)
	}
	return n
}

// PlaceholderCount returns the number of distinct placeholder keys across all units
func (c *TemplateConfiguration) PlaceholderCount() int {
	seen := make(map[string]struct{})
	for _, u := range c.Units {
		for _, k := range u.Specification.Keys() {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}
