// Package testutil provides utilities for testing creatorly components.
//
// Key components:
//   - NewTestFS: in-memory afero filesystem behind types.FS
//   - CreateFileT / CreateTreeT: declarative template trees
//   - MockUserInteraction: testify mock of types.UserInteraction
//   - ScriptedUI: canned answers plus a record of everything printed
//
// Test data should be defined inline, not in external files.
package testutil
