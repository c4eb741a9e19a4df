// Package config loads and validates the TOML configuration for cityforge.
//
// Configuration sections by subsystem:
//   - Paths: source, data, output, log directories and the database path
//   - Sources: the city list files consumed by compile
//   - Curation: composite score clamp band
//   - Vibes: tag strength floor and per-city cardinality band
//   - Seed: batch size, inter-batch pause, and upsert conflict policy
//   - Logging: log format and level
package config
