// Package filerules decides which files of a source package belong in a
// release artifact.
//
// A Collection is built per package kind. It is a union of rule sets plus a
// few literal paths. Inside one rule set name includes are OR'd, path includes
// are OR'd, both groups must match, and any exclude wins. Every rule set also
// carries the baseline exclusions for version-control, IDE and OS metadata.
package filerules
