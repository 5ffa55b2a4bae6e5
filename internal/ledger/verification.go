package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/liralabs/lirabot/internal/model"
)

// VerificationLog appends one human-readable line per exchange to a
// per-backend file under the log directory. It is the durable, eyeball-able
// counterpart to the structured audit store.
type VerificationLog struct {
	dir string
	mu  sync.Mutex
}

// NewVerificationLog returns a verification sink writing under dir.
func NewVerificationLog(dir string) *VerificationLog {
	return &VerificationLog{dir: dir}
}

// Append writes one line for the record to verification_<backend>.log.
func (v *VerificationLog) Append(rec model.UsageRecord) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := os.MkdirAll(v.dir, 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(v.dir, fmt.Sprintf("verification_%s.log", rec.Backend))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening verification log: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "[%s] In: %d | Out: %d | Cost: $%.8f\n",
		rec.Timestamp.Format("2006-01-02 15:04:05"),
		rec.InputTokens, rec.OutputTokens, rec.Cost)
	if err != nil {
		return fmt.Errorf("writing verification log: %w", err)
	}
	return nil
}
