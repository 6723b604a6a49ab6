package catalog

import (
	"context"
	"fmt"

	"github.com/abhisek/skillcoach/internal/store"
)

// Writer persists question records.
type Writer interface {
	UpsertQuestion(ctx context.Context, rec store.QuestionRecord) error
}

// Import upserts every question of f in file order and returns how many were
// written. It stops at the first write failure.
func Import(ctx context.Context, w Writer, f *File) (int, error) {
	recs, err := f.Records()
	if err != nil {
		return 0, err
	}
	for i, rec := range recs {
		if err := w.UpsertQuestion(ctx, rec); err != nil {
			return i, fmt.Errorf("import: %w", err)
		}
	}
	return len(recs), nil
}

// ImportFile loads path and imports it.
func ImportFile(ctx context.Context, w Writer, path string) (int, error) {
	f, err := Load(path)
	if err != nil {
		return 0, err
	}
	return Import(ctx, w, f)
}
