// Package specfile reads and writes creatorly specification files.
//
// A specification file is YAML:
//
//	placeholder_id: CREATORLY        # optional
//	placeholder_delimiter: "."       # optional
//	placeholders:
//	  project_name: my-project       # single choice, value is the default
//	  license: [MIT, Apache-2.0]     # multiple choice, options in order
//
// Placeholder order is preserved on load and on save. Scalar numbers and
// booleans are taken as their literal text.
//
// Validate checks a file against the embedded JSON schema and reports every
// problem found, which is what the check command relies on; Load only fails
// on structure it cannot interpret.
package specfile
