package pipeline

import (
	"context"
	"runtime"
	"sync"

	"voiceprint/internal/chunk"
)

type Analyzer func(ctx context.Context, seg chunk.Segment) error

// Run calls fn once per segment on a bounded pool of workers. Segments not yet
// started when ctx is cancelled are skipped and reported as ctx.Err().
func Run(ctx context.Context, segments []chunk.Segment, workers int, fn Analyzer) []error {
	if len(segments) == 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}
	if workers > len(segments) {
		workers = len(segments)
	}

	jobs := make(chan chunk.Segment)
	errs := make(chan error, len(segments))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seg := range jobs {
				if err := ctx.Err(); err != nil {
					errs <- err
					continue
				}
				if err := fn(ctx, seg); err != nil {
					errs <- err
				}
			}
		}()
	}

	for _, seg := range segments {
		jobs <- seg
	}
	close(jobs)
	wg.Wait()
	close(errs)

	out := make([]error, 0, len(errs))
	for err := range errs {
		out = append(out, err)
	}
	return out
}
