package simulate

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var csvHeader = []string{
	"customer_id", "mode", "query", "response", "ai_cost",
	"stt_cost", "tts_cost", "total_cost", "input_tokens",
	"output_tokens", "audio_duration",
}

// WriteCSV streams records as CSV with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.CustomerID,
			r.Mode,
			r.Query,
			r.Response,
			strconv.FormatFloat(r.AICost, 'f', -1, 64),
			strconv.FormatFloat(r.STTCost, 'f', -1, 64),
			strconv.FormatFloat(r.TTSCost, 'f', -1, 64),
			strconv.FormatFloat(r.TotalCost, 'f', -1, 64),
			strconv.FormatInt(r.InputTokens, 10),
			strconv.FormatInt(r.OutputTokens, 10),
			strconv.FormatFloat(r.AudioSeconds, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes records to dir/voice_simulation_<unix>.csv and
// returns the path.
func ExportCSV(dir string, records []Record, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating log dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("voice_simulation_%d.csv", now.Unix()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating simulation log: %w", err)
	}
	defer f.Close()
	if err := WriteCSV(f, records); err != nil {
		return "", fmt.Errorf("writing simulation log: %w", err)
	}
	return path, nil
}
