// Package diag defines the diagnostic model shared by the binding and
// renaming passes.
//
// Fatal programming errors (a node with no scope, a conflicting substitution,
// a variable with no home) are not diagnostics: they panic at the point of
// detection. Diagnostics cover everything the translator can keep going
// after, such as methods with no declaring type or queued names that match
// no binding.
//
// Phases emit through a Reporter. BagReporter collects into a Bag, which
// supports sorting and merging; DedupReporter drops repeats before
// they reach the bag.
package diag
