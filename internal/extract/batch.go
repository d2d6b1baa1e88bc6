// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/dpe-reader/pkg/types"
)

// Loader fetches the raw bytes of a document named by source.
type Loader func(ctx context.Context, source string) ([]byte, error)

// Emitter receives the outcome for one source: a *types.Record or a
// types.Failure. Returning an error stops the batch.
type Emitter func(source string, result any) error

// BatchSummary holds counts from a ParseAll run.
type BatchSummary struct {
	Parsed int
	Failed int
}

// Total returns the number of sources processed.
func (s BatchSummary) Total() int {
	return s.Parsed + s.Failed
}

// HasFailures reports whether any source failed to load or parse.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ParseAll loads and parses sources one after another, passing each outcome
// to emit and writing a progress line per source to w. A source that fails
// to load or parse is counted and emitted as a types.Failure; the batch goes
// on. Cancellation of ctx is checked between documents.
func ParseAll(ctx context.Context, load Loader, sources []string, emit Emitter, w io.Writer) (BatchSummary, error) {
	var summary BatchSummary

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		data, err := load(ctx, src)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", src, err)
			summary.Failed++
			if err := emit(src, types.Failure{Error: err.Error()}); err != nil {
				return summary, fmt.Errorf("emitting %s: %w", src, err)
			}
			continue
		}

		rec, err := Parse(bytes.NewReader(data))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", src, err)
			summary.Failed++
			if err := emit(src, types.Failure{Error: err.Error()}); err != nil {
				return summary, fmt.Errorf("emitting %s: %w", src, err)
			}
			continue
		}

		fmt.Fprintf(w, "parsed  %s (%d packs)\n", src, len(rec.Packs))
		summary.Parsed++
		if err := emit(src, rec); err != nil {
			return summary, fmt.Errorf("emitting %s: %w", src, err)
		}
	}

	return summary, nil
}
