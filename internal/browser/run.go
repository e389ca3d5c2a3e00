package browser

import (
	"context"
)

// Fetch runs req against lister and packages the outcome for Complete.
func Fetch(ctx context.Context, lister Lister, req FetchRequest) FetchResult {
	listing, err := lister.FetchListing(ctx, req.Container, req.Prefix)
	return FetchResult{Generation: req.Generation, Listing: listing, Err: err}
}

// Run drives s without a terminal: it performs fetches with lister, feeds
// actions from the channel and calls render after every visible change.
// It returns when the session ends, ctx is cancelled or actions is closed.
func Run(ctx context.Context, s *Session, lister Lister, actions <-chan Action, render func(Snapshot)) (*Selection, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan FetchResult)
	start := func(req FetchRequest) {
		go func() {
			res := Fetch(runCtx, lister, req)
			select {
			case results <- res:
			case <-runCtx.Done():
			}
		}()
	}

	draw := func() {
		if render != nil {
			render(s.Snapshot())
		}
	}

	start(s.Begin())
	draw()

	for !s.Status().Terminal() {
		select {
		case <-ctx.Done():
			s.Abort()

		case res := <-results:
			if s.Complete(res) {
				draw()
			}

		case action, ok := <-actions:
			if !ok {
				s.Abort()
				break
			}
			effect := s.Dispatch(action)
			switch effect.Kind {
			case EffectFetch:
				start(effect.Fetch)
				draw()
			case EffectRender, EffectDone:
				draw()
			}
		}
	}

	return s.Result()
}
