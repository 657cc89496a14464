package store

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"LiquiditySentinel/internal/model"
)

// Load reads the indicator store from a JSON file. A missing or unreadable
// file degrades to an empty store: the run then has nothing to update and
// leaves the file alone.
func Load(path string) []model.Indicator {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[WARN] %s not found; treating store as empty", path)
		} else {
			log.Printf("[ERROR] read %s: %v; treating store as empty", path, err)
		}
		return nil
	}
	var records []model.Indicator
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("[ERROR] parse %s: %v; treating store as empty", path, err)
		return nil
	}
	return records
}

// Save writes the whole store back as one snapshot. The file is written to a
// temporary sibling and renamed over the target so a crash mid-write cannot
// leave a truncated store behind.
func Save(path string, records []model.Indicator) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".indicators-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp store: %w", err)
	}
	// Flush to disk before the rename so a crash cannot publish an empty file.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod temp store: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// Find returns the first record whose name contains keyword,
// case-insensitively, or nil when no record matches. It never creates
// records; overlapping names resolve to the earliest record in list order.
func Find(records []model.Indicator, keyword string) *model.Indicator {
	key := strings.ToLower(keyword)
	for i := range records {
		if strings.Contains(strings.ToLower(records[i].Name), key) {
			return &records[i]
		}
	}
	return nil
}

// Apply writes a computed value into the record: current is rounded to the
// given number of decimal places, the meta patch merges on top of existing
// meta, and the detail text is replaced wholly. Applying the same inputs
// twice leaves the record unchanged.
func Apply(rec *model.Indicator, value float64, precision int, patch model.Meta, detail string) {
	rec.Current = Round(value, precision)
	rec.Meta.Merge(patch)
	rec.Detail = detail
}

// Round rounds to the given number of decimal places.
func Round(value float64, places int) float64 {
	mult := math.Pow(10, float64(places))
	return math.Round(value*mult) / mult
}
