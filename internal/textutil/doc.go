// Package textutil provides text normalization helpers shared across the
// pipeline: Unicode punctuation cleanup for raw source lines and
// diacritic-stripping slug generation for city identity.
package textutil
