package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"cityforge/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return newStageCommand(ctx, "run", "Run the full pipeline: compile, curate, vibes, seed",
		"compile", "curate", "vibes", "seed")
}

func newCompileCommand(ctx *commandContext) *cobra.Command {
	return newStageCommand(ctx, "compile", "Ingest source lists and deduplicate candidates", "compile")
}

func newCurateCommand(ctx *commandContext) *cobra.Command {
	return newStageCommand(ctx, "curate", "Enrich and score the compiled candidates", "curate")
}

func newVibesCommand(ctx *commandContext) *cobra.Command {
	return newStageCommand(ctx, "vibes", "Assign vibe tags to the curated cities", "vibes")
}

func newSeedCommand(ctx *commandContext) *cobra.Command {
	return newStageCommand(ctx, "seed", "Seed the catalog database from the curated artifacts", "seed")
}

func newStageCommand(ctx *commandContext, use, short string, names ...string) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, ctx, jsonOut, names...)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the stage summary as JSON")
	return cmd
}

func runPipeline(cmd *cobra.Command, cmdCtx *commandContext, jsonOut bool, names ...string) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	data, err := cmdCtx.ensureDataset()
	if err != nil {
		return fmt.Errorf("load data tables: %w", err)
	}
	logger, closeLogs, err := cmdCtx.runLogger()
	if err != nil {
		return err
	}
	defer closeLogs()

	var stages []pipeline.Stage
	var compile *pipeline.CompileStage
	var curate *pipeline.CurateStage
	var vibes *pipeline.VibesStage
	var seed *pipeline.SeedStage

	for _, name := range names {
		switch name {
		case "compile":
			compile = pipeline.NewCompileStage(cfg, data, logger)
			stages = append(stages, compile)
		case "curate":
			curate = pipeline.NewCurateStage(cfg, data, logger)
			stages = append(stages, curate)
		case "vibes":
			vibes = pipeline.NewVibesStage(cfg, data, logger)
			stages = append(stages, vibes)
		case "seed":
			seed = pipeline.NewSeedStage(cfg, logger)
			if isatty.IsTerminal(os.Stderr.Fd()) {
				seed.SetProgress(os.Stderr)
			}
			stages = append(stages, seed)
		default:
			return fmt.Errorf("unknown stage %q", name)
		}
	}

	runner := pipeline.NewRunner(lockPath(cfg), pipeline.WithLogger(logger))
	if err := runner.Run(signalCtx, stages...); err != nil {
		return err
	}

	if jsonOut {
		report := make(map[string]any, len(names))
		if compile != nil {
			report["compile"] = map[string]any{
				"ingest":             compile.Ingest.Stats,
				"duplicates_dropped": compile.Dedup.DuplicatesDropped,
				"already_cataloged":  len(compile.Dedup.ExistingMatched),
				"new_candidates":     len(compile.Dedup.New),
			}
		}
		if curate != nil {
			report["curate"] = curate.Result.Stats
		}
		if vibes != nil {
			report["vibes"] = vibes.Result.Stats
		}
		if seed != nil {
			report["seed"] = map[string]any{
				"cities":  seed.CitySummary,
				"vibes":   seed.VibeSummary,
				"catalog": seed.Counts,
			}
		}
		return writeJSON(cmd, report)
	}

	out := cmd.OutOrStdout()
	if compile != nil {
		printCompileSummary(out, compile)
	}
	if curate != nil {
		printCurateSummary(out, curate)
	}
	if vibes != nil {
		printVibesSummary(out, vibes)
	}
	if seed != nil {
		printSeedSummary(out, seed)
	}
	return nil
}

func printCompileSummary(out io.Writer, stage *pipeline.CompileStage) {
	fmt.Fprintln(out, "Compile")
	fmt.Fprintln(out, renderTable(
		[]string{"Metric", "Count"},
		[][]string{
			{"Parsed", count(stage.Ingest.Stats.Parsed)},
			{"Junk filtered", count(stage.Ingest.Stats.JunkFiltered)},
			{"Unparsed", count(stage.Ingest.Stats.Unparsed)},
			{"Duplicates dropped", count(stage.Dedup.DuplicatesDropped)},
			{"Already cataloged", count(len(stage.Dedup.ExistingMatched))},
			{"New candidates", count(len(stage.Dedup.New))},
		},
		1,
	))
	if missing := stage.Ingest.Stats.MissingSources; len(missing) > 0 {
		fmt.Fprintf(out, "Missing sources: %v\n", missing)
	}
}

func printCurateSummary(out io.Writer, stage *pipeline.CurateStage) {
	stats := stage.Result.Stats
	fmt.Fprintln(out, "Curate")
	fmt.Fprintln(out, renderTable(
		[]string{"Metric", "Count"},
		[][]string{
			{"Candidates", count(stats.Input)},
			{"Removed", count(stats.Removed)},
			{"Curated", count(stats.Curated)},
			{"Data gaps", count(stats.DataGaps)},
		},
		1,
	))
	if stats.Curated > 0 {
		fmt.Fprintf(out, "Composite scores: min %.1f, max %.1f, mean %.1f\n",
			stats.ScoreMin, stats.ScoreMax, stats.ScoreMean)
		continents := sortedKeys(stats.ByContinent)
		rows := make([][]string, 0, len(continents))
		for _, continent := range continents {
			rows = append(rows, []string{continent, count(stats.ByContinent[continent])})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Continent", "Cities"}, rows,
			1,
		))
	}
}

func printVibesSummary(out io.Writer, stage *pipeline.VibesStage) {
	stats := stage.Result.Stats
	fmt.Fprintln(out, "Vibes")
	fmt.Fprintln(out, renderTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Cities", count(stats.Cities)},
			{"Assignments", count(stats.Assignments)},
			{"Tags per city (min)", count(stats.MinPerCity)},
			{"Tags per city (max)", count(stats.MaxPerCity)},
			{"Tags per city (mean)", fmt.Sprintf("%.1f", stats.MeanPerCity)},
		},
		1,
	))

	tags := sortedKeys(stats.ByTag)
	sort.SliceStable(tags, func(i, j int) bool {
		return stats.ByTag[tags[i]] > stats.ByTag[tags[j]]
	})
	rows := make([][]string, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, []string{tag, count(stats.ByTag[tag])})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"Tag", "Cities"}, rows,
			1,
		))
	}
}

func printSeedSummary(out io.Writer, stage *pipeline.SeedStage) {
	fmt.Fprintln(out, "Seed")
	fmt.Fprintln(out, renderTable(
		[]string{"Pass", "Batches", "Failed", "Rows"},
		[][]string{
			{"Cities", count(stage.CitySummary.Batches), count(stage.CitySummary.FailedBatches), count(stage.CitySummary.Rows)},
			{"Vibe tags", count(stage.VibeSummary.Batches), count(stage.VibeSummary.FailedBatches), count(stage.VibeSummary.Rows)},
		},
		1, 2, 3,
	))
	fmt.Fprintln(out, renderTable(
		[]string{"Catalog", "Count"},
		[][]string{
			{"Cities", count(stage.Counts.Cities)},
			{"Score rows", count(stage.Counts.ScoreRows)},
			{"Vibe tag rows", count(stage.Counts.TagRows)},
			{"Tagged cities", count(stage.Counts.TaggedCities)},
			{"Distinct vibes", count(stage.Counts.DistinctVibes)},
			{"Tags per city (avg)", fmt.Sprintf("%.1f", stage.Counts.AveragePerCity)},
		},
		1,
	))
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
