// Package dataset loads the hand-authored data tables the pipeline depends
// on: the city enrichment records, the removal list, the known existing-city
// identifiers, and the manual vibe overrides. Defaults ship embedded in the
// binary; any file of the same name in the configured data directory takes
// precedence, so curators can edit the tables without rebuilding.
package dataset
