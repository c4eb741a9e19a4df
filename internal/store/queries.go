package store

import (
	"context"
	"fmt"
)

// TagStrength is one named tag assignment read back from the database.
type TagStrength struct {
	Name     string
	Strength float64
}

// CityVibes returns the tags assigned to a city, strongest first.
func (s *Store) CityVibes(ctx context.Context, cityID string) ([]TagStrength, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
		SELECT vt.name, cvt.strength
		FROM city_vibe_tags cvt
		JOIN vibe_tags vt ON vt.id = cvt.vibe_tag_id
		WHERE cvt.city_id = ?
		ORDER BY cvt.strength DESC, vt.name`, cityID)
	if err != nil {
		return nil, fmt.Errorf("query city vibes: %w", err)
	}
	defer rows.Close()

	var result []TagStrength
	for rows.Next() {
		var ts TagStrength
		if err := rows.Scan(&ts.Name, &ts.Strength); err != nil {
			return nil, fmt.Errorf("scan city vibe: %w", err)
		}
		result = append(result, ts)
	}
	return result, rows.Err()
}

// CityScore returns the composite score recorded for a city.
func (s *Store) CityScore(ctx context.Context, cityID string) (float64, error) {
	ctx = ensureContext(ctx)
	var score float64
	err := s.db.QueryRowContext(ctx,
		"SELECT teleport_city_score FROM cities WHERE id = ?", cityID).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("query city score: %w", err)
	}
	return score, nil
}
