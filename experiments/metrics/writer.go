package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig identifies one searching player setup in an experiment.
type AgentConfig struct {
	ID             int
	Depth          string
	Goroutines     int
	RandomOpenings int
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing X
	Agent2 int // AgentConfig.ID playing O
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates outDir/name/<timestamp> and writes every file there.
func NewWriter(outDir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(outDir, name, timestamp)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Depth,
			strconv.Itoa(config.Goroutines),
			strconv.Itoa(config.RandomOpenings),
		})
	}
	return w.write("agent_configs.csv", []string{"id", "depth", "goroutines", "random_openings"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.Size),
			record.StartingPlayer,
			record.Winner,
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		})
	}
	header := []string{"id", "agent1", "agent2", "size", "starting_player", "winner", "total_moves", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, append([]string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			strconv.Itoa(record.Row),
			strconv.Itoa(record.Col),
		}, searchColumns(record.SearchMetric)...))
	}
	header := append([]string{"game", "step", "player", "row", "col"}, searchHeader...)
	return w.write("move_records.csv", header, rows)
}

// WriteSearchMetrics stores standalone searches, one row each.
func (w *Writer) WriteSearchMetrics(records []SearchMetric) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, searchColumns(record))
	}
	return w.write("search_metrics.csv", searchHeader, rows)
}

var searchHeader = []string{"goroutines", "depth", "duration", "candidates", "nodes", "cutoffs", "score"}

func searchColumns(m SearchMetric) []string {
	return []string{
		strconv.Itoa(m.Goroutines),
		m.Depth,
		m.Duration.String(),
		strconv.Itoa(m.Candidates),
		strconv.Itoa(m.Nodes),
		strconv.Itoa(m.Cutoffs),
		strconv.Itoa(m.Score),
	}
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", file, err)
	}
	return nil
}
