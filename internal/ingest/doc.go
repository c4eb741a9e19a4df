// Package ingest reads the heterogeneous city list sources, filters
// editorial junk lines, and parses the survivors into city candidates.
//
// A missing source file is a warning, not an error. Lines that fail to parse
// are dropped and counted separately from junk so operators can tell filter
// false-negatives from genuine format errors.
package ingest
