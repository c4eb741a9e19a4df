// Package services defines the shared error taxonomy used by pipeline stages
// and commands. Errors are tagged with sentinel markers so callers can decide
// whether a failure is fatal to the run or a reportable data problem.
package services
