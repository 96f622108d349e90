// Package types defines the core types and interfaces used throughout creatorly.
// This includes the Specification model (placeholders and their choices),
// TemplateUnit and TemplateConfiguration produced by resolution, and the
// collaborator interfaces (FS, FileLoader, SpecStore, UserInteraction,
// Renderer) the flows are wired from.
package types
