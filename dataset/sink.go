package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/spnforge/spngen/validity"
)

// Accepted is one VALID candidate as classified into the dataset: its UUID
// (stamped so concurrent writers never collide on a filename), its bin
// coordinates, and the validity record carrying the matrix, reachability
// graph and steady-state metrics.
type Accepted struct {
	ID     uuid.UUID
	P, T   int
	Bucket int
	Record *validity.Record
}

// Sink persists an accepted SPN. Generate calls every configured sink for
// every accepted candidate; a write failure is an I/O error and propagates
// to the caller, unlike candidate rejection which is just recorded.
type Sink interface {
	Write(a Accepted) error
}

// CSVSink writes a metadata table: one row per accepted SPN with columns
// filename, places, transitions, states. Filename is synthesized from the
// candidate's UUID since this package does not itself perform array
// persistence; callers that persist the full arrays elsewhere can use this
// column to join back. Write is safe for concurrent use.
type CSVSink struct {
	mu  sync.Mutex
	w   *csv.Writer
	n   int
	ext string
}

// NewCSVSink wraps w for metadata.csv output, writing the header row
// immediately. ext is the file extension accepted-SPN files would carry
// (e.g. "h5"); it only affects the synthesized filename column.
func NewCSVSink(w io.Writer, ext string) (*CSVSink, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"filename", "places", "transitions", "states"}); err != nil {
		return nil, fmt.Errorf("dataset: writing csv header: %w", err)
	}
	return &CSVSink{w: cw, ext: ext}, nil
}

func (s *CSVSink) Write(a Accepted) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filename := fmt.Sprintf("%s.%s", a.ID.String(), s.ext)
	row := []string{
		filename,
		fmt.Sprintf("%d", a.P),
		fmt.Sprintf("%d", a.T),
		fmt.Sprintf("%d", a.Record.Graph.StateCount()),
	}
	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("dataset: writing csv row: %w", err)
	}
	s.n++
	s.w.Flush()
	return s.w.Error()
}

// Count returns the number of rows written so far.
func (s *CSVSink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}
