package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"cityforge/internal/catalog"
	"cityforge/internal/store"
)

type artifactStatus struct {
	Name     string     `json:"name"`
	State    string     `json:"state"`
	Bytes    int64      `json:"bytes,omitempty"`
	Modified *time.Time `json:"modified,omitempty"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show pipeline artifacts and catalog database state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			artifacts := []string{
				catalog.CandidatesArtifact,
				catalog.CitiesArtifact,
				catalog.TagsArtifact,
			}
			statuses := make([]artifactStatus, 0, len(artifacts))
			for _, name := range artifacts {
				path := cfg.ArtifactPath(name)
				info, err := os.Stat(path)
				switch {
				case errors.Is(err, fs.ErrNotExist):
					statuses = append(statuses, artifactStatus{Name: name, State: "missing"})
				case err != nil:
					statuses = append(statuses, artifactStatus{Name: name, State: "error: " + err.Error()})
				default:
					modified := info.ModTime().UTC()
					statuses = append(statuses, artifactStatus{
						Name:     name,
						State:    "present",
						Bytes:    info.Size(),
						Modified: &modified,
					})
				}
			}

			if jsonOut {
				report := map[string]any{"artifacts": statuses}
				if counts, ok, err := catalogCounts(cmd, ctx); err != nil {
					return err
				} else if ok {
					report["database"] = counts
				}
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				size, updated := "", ""
				if status.State == "present" {
					size = humanize.Bytes(uint64(status.Bytes))
					updated = humanize.Time(*status.Modified)
				}
				rows = append(rows, []string{status.Name, status.State, size, updated})
			}
			fmt.Fprintln(out, "Artifacts")
			fmt.Fprintln(out, renderTable(
				[]string{"Artifact", "State", "Size", "Updated"}, rows,
				2,
			))

			return printDatabaseStatus(cmd, ctx)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit status as JSON")
	return cmd
}

// catalogCounts opens the database when it exists and returns its counts.
func catalogCounts(cmd *cobra.Command, ctx *commandContext) (store.Counts, bool, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return store.Counts{}, false, err
	}
	if _, err := os.Stat(cfg.Paths.DatabasePath); errors.Is(err, fs.ErrNotExist) {
		return store.Counts{}, false, nil
	} else if err != nil {
		return store.Counts{}, false, fmt.Errorf("inspect database: %w", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		return store.Counts{}, false, fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	counts, err := st.Verify(cmd.Context())
	if err != nil {
		return store.Counts{}, false, fmt.Errorf("read catalog counts: %w", err)
	}
	return counts, true, nil
}

func printDatabaseStatus(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	info, err := os.Stat(cfg.Paths.DatabasePath)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(out, "Database: not created (%s)\n", cfg.Paths.DatabasePath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("inspect database: %w", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		if errors.Is(err, store.ErrSchemaMismatch) {
			fmt.Fprintf(out, "Database: incompatible schema (%v)\n", err)
			return nil
		}
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	counts, err := st.Verify(cmd.Context())
	if err != nil {
		return fmt.Errorf("read catalog counts: %w", err)
	}

	fmt.Fprintf(out, "Database: %s (%s)\n", cfg.Paths.DatabasePath, humanize.Bytes(uint64(info.Size())))
	fmt.Fprintln(out, renderTable(
		[]string{"Catalog", "Count"},
		[][]string{
			{"Cities", count(counts.Cities)},
			{"Score rows", count(counts.ScoreRows)},
			{"Vibe tag rows", count(counts.TagRows)},
			{"Tagged cities", count(counts.TaggedCities)},
			{"Distinct vibes", count(counts.DistinctVibes)},
			{"Tags per city (avg)", fmt.Sprintf("%.1f", counts.AveragePerCity)},
		},
		1,
	))
	return nil
}
