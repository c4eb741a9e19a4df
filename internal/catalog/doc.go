// Package catalog defines the data model the pipeline passes between stages:
// raw city candidates from ingestion, enriched city records, and the fixed
// 17-category score vector, along with the JSON artifact files that carry
// them between commands.
package catalog
