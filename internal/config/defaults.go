package config

const (
	defaultSourcesDir   = "~/.local/share/cityforge/sources"
	defaultDataDir      = "~/.local/share/cityforge/data"
	defaultOutputDir    = "~/.local/share/cityforge/output"
	defaultLogDir       = "~/.local/share/cityforge/logs"
	defaultDatabasePath = "~/.local/share/cityforge/cityforge.db"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"

	defaultScoreFloor   = 40.0
	defaultScoreCeiling = 75.0

	defaultStrengthFloor = 0.3
	defaultMinTags       = 5
	defaultMaxTags       = 10

	defaultSeedBatchSize    = 100
	defaultSeedBatchPauseMS = 500
)

// Default returns a Config populated with repository defaults, including the
// standard six-source city list layout.
func Default() Config {
	return Config{
		Paths: Paths{
			SourcesDir:   defaultSourcesDir,
			DataDir:      defaultDataDir,
			OutputDir:    defaultOutputDir,
			LogDir:       defaultLogDir,
			DatabasePath: defaultDatabasePath,
		},
		Sources: DefaultSources(),
		Curation: Curation{
			ScoreFloor:   defaultScoreFloor,
			ScoreCeiling: defaultScoreCeiling,
		},
		Vibes: Vibes{
			StrengthFloor: defaultStrengthFloor,
			MinTags:       defaultMinTags,
			MaxTags:       defaultMaxTags,
		},
		Seed: Seed{
			BatchSize:      defaultSeedBatchSize,
			BatchPauseMS:   defaultSeedBatchPauseMS,
			ConflictPolicy: ConflictUpdate,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// DefaultSources mirrors the historical source file set.
func DefaultSources() []Source {
	return []Source{
		{Label: "USA.md", Path: "USA.md", Format: FormatUS, Continent: "North America"},
		{Label: "Europe.md", Path: "Europe.md", Format: FormatInternational, Continent: "Europe"},
		{Label: "Asia", Path: "Asia", Format: FormatInternational, Continent: "Asia"},
		{Label: "Africa", Path: "Africa", Format: FormatInternational, Continent: "Africa"},
		{Label: "MiddleEast", Path: "MiddleEast", Format: FormatInternational, Continent: "Middle East"},
		{Label: "Americas+Australia.csv", Path: "Americas+Australia.csv", Format: FormatInternational, Continent: ContinentAuto},
	}
}
