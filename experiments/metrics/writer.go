package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory under baseDir to hold one
// experiment's files.
func NewWriter(baseDir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	dir := filepath.Join(baseDir, timestamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: dir}, nil
}

// Dir returns the directory the records are written into.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteMatches(records []MatchRecord) error {
	path := filepath.Join(w.baseDir, "match_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create match records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"id", "blue", "red", "first", "winner", "blue_score", "red_score", "turns", "seed", "start_time", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write match records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			record.ID.String(),
			record.Blue,
			record.Red,
			record.First.String(),
			record.Winner,
			strconv.Itoa(record.BlueScore),
			strconv.Itoa(record.RedScore),
			strconv.Itoa(record.Turns),
			strconv.FormatUint(record.Seed, 10),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write match record row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteMoves(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "move_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create move records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"match", "step", "player", "action", "duration", "expanded_nodes", "depth_limit_leaves", "terminal_leaves", "pruned_branches"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write move records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			record.Match.String(),
			strconv.Itoa(record.Step),
			record.Player.String(),
			record.Action,
			record.Duration.String(),
			strconv.Itoa(record.Search.ExpandedNodes),
			strconv.Itoa(record.Search.DepthLimitLeaves),
			strconv.Itoa(record.Search.TerminalLeaves),
			strconv.Itoa(record.Search.Pruned()),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write move record row: %w", err)
		}
	}

	return nil
}
