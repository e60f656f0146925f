package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSVGSinkRendersAcceptedCandidates(t *testing.T) {
	dir := t.TempDir()
	sink := NewSVGSink(dir)

	cfg := NewConfig([2]int{2, 2}, [2]int{2, 2}, nil, 1).WithSinks(sink)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := Generate(ctx, cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Accepted) == 0 {
		t.Fatal("expected at least one accepted candidate")
	}

	for _, a := range res.Accepted {
		path := filepath.Join(dir, a.ID.String()+".svg")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading rendered svg for %s: %v", a.ID, err)
		}
		if !bytes.Contains(data, []byte("<svg")) {
			t.Fatalf("expected %s to contain an <svg> element", path)
		}
		if !strings.Contains(string(data), "p0") {
			t.Fatalf("expected rendered svg for %s to label at least one place", a.ID)
		}
	}
}
