package database

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// CSVLeadRecordRepository appends lead records to a flat CSV file. The file
// is opened and closed on every write; mu keeps rows from interleaving when
// several goroutines save at once.
type CSVLeadRecordRepository struct {
	path string
	mu   sync.Mutex
}

func NewCSVLeadRecordRepository(path string) (*CSVLeadRecordRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("lead log: ensure dir: %w", err)
		}
	}
	return &CSVLeadRecordRepository{path: path}, nil
}

func (r *CSVLeadRecordRepository) Path() string {
	return r.path
}

func (r *CSVLeadRecordRepository) Save(ctx context.Context, record *entity.LeadRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("lead log: open %s: %w", r.path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("lead log: stat %s: %w", r.path, err)
	}

	// Header and row go out in a single write.
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		if err := w.Write(entity.LeadRecordHeader); err != nil {
			return fmt.Errorf("lead log: encode header: %w", err)
		}
	}
	if err := w.Write(record.Row()); err != nil {
		return fmt.Errorf("lead log: encode row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("lead log: encode row: %w", err)
	}

	if _, err := file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("lead log: write %s: %w", r.path, err)
	}
	return nil
}

// ReadAll returns every data row of the log, skipping the header.
func (r *CSVLeadRecordRepository) ReadAll(ctx context.Context) ([]entity.LeadRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("lead log: open %s: %w", r.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(entity.LeadRecordHeader)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("lead log: parse %s: %w", r.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]entity.LeadRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("lead log: row %d: invalid lead_id %q", i+2, row[0])
		}
		records = append(records, entity.LeadRecord{
			LeadID:   id,
			Name:     row[1],
			Age:      row[2],
			Country:  row[3],
			Interest: row[4],
			Status:   entity.Status(row[5]),
		})
	}
	return records, nil
}

// CountByStatus counts the log rows carrying status.
func (r *CSVLeadRecordRepository) CountByStatus(ctx context.Context, status entity.Status) (int, error) {
	records, err := r.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, rec := range records {
		if rec.Status == status {
			count++
		}
	}
	return count, nil
}

// Healthy reports whether the log file can be opened for appending.
func (r *CSVLeadRecordRepository) Healthy() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	return file.Close()
}
