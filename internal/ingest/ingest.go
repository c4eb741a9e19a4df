package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"cityforge/internal/catalog"
	"cityforge/internal/config"
	"cityforge/internal/logging"
	"cityforge/internal/textutil"
)

// JunkLine records a filtered annotation line and the source it came from.
type JunkLine struct {
	Source string `json:"source"`
	Line   string `json:"line"`
}

// Stats summarizes an ingestion run.
type Stats struct {
	Parsed         int      `json:"parsed"`
	JunkFiltered   int      `json:"junk_filtered"`
	Unparsed       int      `json:"unparsed"`
	MissingSources []string `json:"missing_sources,omitempty"`
}

// Result is the output of the ingestion stage.
type Result struct {
	Candidates []catalog.Candidate
	Junk       []JunkLine
	Stats      Stats
}

// Ingestor reads configured sources into city candidates. Lookup tables are
// injected so tests can substitute fixtures.
type Ingestor struct {
	sources    []config.Source
	states     map[string]string
	continents map[string]string
	logger     *slog.Logger
}

// Option adjusts Ingestor construction.
type Option func(*Ingestor)

// WithStates overrides the state abbreviation table.
func WithStates(states map[string]string) Option {
	return func(i *Ingestor) { i.states = states }
}

// WithContinents overrides the country to continent table.
func WithContinents(continents map[string]string) Option {
	return func(i *Ingestor) { i.continents = continents }
}

// WithLogger sets the stage logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Ingestor) { i.logger = logger }
}

// New constructs an Ingestor over the given sources.
func New(sources []config.Source, opts ...Option) *Ingestor {
	ing := &Ingestor{
		sources:    sources,
		states:     USStates,
		continents: CountryContinents,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// Run processes every source in order and returns the combined candidates
// plus filtering statistics. A missing source file is logged and skipped.
func (i *Ingestor) Run() (*Result, error) {
	result := &Result{}
	for _, src := range i.sources {
		if err := i.readSource(src, result); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				i.logger.Warn("source file not found",
					logging.String("source", src.Label),
					logging.String("path", src.Path))
				result.Stats.MissingSources = append(result.Stats.MissingSources, src.Label)
				continue
			}
			return nil, fmt.Errorf("read source %s: %w", src.Label, err)
		}
	}
	return result, nil
}

func (i *Ingestor) readSource(src config.Source, result *Result) error {
	file, err := os.Open(src.Path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		rawLine := scanner.Text()
		line := strings.TrimSpace(textutil.NormalizePunctuation(rawLine))
		if line == "" {
			continue
		}

		if IsJunk(line) {
			result.Junk = append(result.Junk, JunkLine{Source: src.Label, Line: line})
			result.Stats.JunkFiltered++
			continue
		}

		candidate, ok := i.parseLine(src, line)
		if !ok {
			result.Stats.Unparsed++
			i.logger.Debug("unparseable line",
				logging.String("source", src.Label),
				logging.String("line", line))
			continue
		}
		candidate.SourceFile = src.Label
		result.Candidates = append(result.Candidates, candidate)
		result.Stats.Parsed++
	}
	return scanner.Err()
}

func (i *Ingestor) parseLine(src config.Source, line string) (catalog.Candidate, bool) {
	if src.Format == config.FormatUS {
		candidate, ok := parseUSLine(line, i.states)
		if !ok {
			return catalog.Candidate{}, false
		}
		candidate.Continent = src.Continent
		return candidate, true
	}

	candidate, ok := parseInternationalLine(line)
	if !ok {
		return catalog.Candidate{}, false
	}
	if src.Continent == config.ContinentAuto {
		candidate.Continent = i.continentFor(candidate.Country)
	} else {
		candidate.Continent = src.Continent
	}
	return candidate, true
}

func (i *Ingestor) continentFor(country string) string {
	if continent, ok := i.continents[country]; ok {
		return continent
	}
	return ContinentOther
}
