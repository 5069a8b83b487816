package workflow

import "context"

// Sequential runs n tasks strictly in order, awaiting each before the
// next begins. Creation order must follow document order so created and
// skipped counts stay deterministic and the post-create re-match is
// unambiguous when two candidates share a normalized name.
//
// Individual task errors are handed to onError and do not stop the run;
// only context cancellation ends it early.
func Sequential(ctx context.Context, n int, task func(ctx context.Context, i int) error, onError func(i int, err error)) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := task(ctx, i); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			onError(i, err)
		}
	}
	return ctx.Err()
}
