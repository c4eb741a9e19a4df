package vibes

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadAssignments reads a tag assignment artifact.
func LoadAssignments(path string) ([]Assignment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", path, err)
	}
	var rows []Assignment
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse artifact %s: %w", path, err)
	}
	for _, row := range rows {
		if _, ok := Lookup(row.TagName); !ok {
			return nil, fmt.Errorf("artifact %s: unknown tag %q", path, row.TagName)
		}
	}
	return rows, nil
}
