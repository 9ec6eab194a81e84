// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package actor

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pdiddy/quote-detection/pkg/types"
)

// CSVWriter streams actor records as CSV with a header row.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter writes the header and returns a writer for records.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.ActorFields); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	cw.Flush()
	return &CSVWriter{w: cw}, cw.Error()
}

// Write appends records and flushes them.
func (c *CSVWriter) Write(records []types.ActorRecord) error {
	for _, r := range records {
		if err := c.w.Write(r.Row()); err != nil {
			return err
		}
	}
	c.w.Flush()
	return c.w.Error()
}
