package result

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/google/renameio/v2"

	"github.com/fmi-tools/fmucheck/fmi"
)

// CSV writes samples as rows of "time, outputs..." to a pending file that
// replaces path atomically on Close. Readers of path never see a partial file.
type CSV struct {
	path    string
	reader  fmi.OutputReader
	pending *renameio.PendingFile
	w       *csv.Writer
	row     []string
	closed  bool
}

// NewCSV creates the pending file and writes the header row.
func NewCSV(path string, reader fmi.OutputReader, separator rune) (*CSV, error) {
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return nil, fmt.Errorf("create pending CSV file: %w", err)
	}

	w := csv.NewWriter(pending)
	w.Comma = separator
	names := reader.OutputNames()
	header := append([]string{"time"}, names...)
	if err := w.Write(header); err != nil {
		_ = pending.Cleanup()
		return nil, fmt.Errorf("write CSV header: %w", err)
	}

	return &CSV{
		path:    path,
		reader:  reader,
		pending: pending,
		w:       w,
		row:     make([]string, len(header)),
	}, nil
}

func (c *CSV) Write(t float64) error {
	if c.closed {
		return fmt.Errorf("write to closed CSV %s", c.path)
	}
	values, err := c.reader.Outputs()
	if err != nil {
		return fmt.Errorf("read outputs: %w", err)
	}
	if len(values)+1 != len(c.row) {
		return fmt.Errorf("got %d output values, header has %d", len(values), len(c.row)-1)
	}

	c.row[0] = formatFloat(t)
	for i, v := range values {
		c.row[i+1] = formatFloat(v)
	}
	if err := c.w.Write(c.row); err != nil {
		return fmt.Errorf("write CSV row: %w", err)
	}
	return nil
}

// Close flushes the rows and atomically replaces the target file.
func (c *CSV) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		_ = c.pending.Cleanup()
		return fmt.Errorf("flush CSV: %w", err)
	}
	if err := c.pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", c.path, err)
	}
	return nil
}

// Abort discards everything written so far; the target file is left untouched.
func (c *CSV) Abort() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.pending.Cleanup()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
