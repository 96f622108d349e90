package types

import (
	"fmt"
	"strings"
)

// RenderIssue is one problem found while checking a template
type RenderIssue struct {
	Path    string
	Message string
}

func (i RenderIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// CheckResult accumulates issues; a result without issues is valid
type CheckResult struct {
	Issues []RenderIssue
}

// IsValid reports whether no issue was recorded
func (r *CheckResult) IsValid() bool {
	return len(r.Issues) == 0
}

// Add records an issue for path
func (r *CheckResult) Add(path, message string) {
	r.Issues = append(r.Issues, RenderIssue{Path: path, Message: message})
}

// Merge appends the issues of other
func (r *CheckResult) Merge(other *CheckResult) {
	if other == nil {
		return
	}
	r.Issues = append(r.Issues, other.Issues...)
}

// Error joins every issue, one per line
func (r *CheckResult) Error() string {
	lines := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		lines[i] = issue.String()
	}
	return strings.Join(lines, "\n")
}
