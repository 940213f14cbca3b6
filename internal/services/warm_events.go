package services

import (
	"context"
	"fmt"
	"sync"
)

type warmResult struct {
	eventID string
	err     error
}

// WarmEvents solves and caches every named event concurrently, bounded by
// a small worker pool, so a deployment can pre-populate its solve cache
// before traffic arrives instead of paying the DP cost on first request.
// There is nothing to parallelize inside a single solve, but solving N
// independent events concurrently fits the same bounded fan-out shape as
// a pairwise-distance computation: a semaphore-guarded goroutine per
// item, errors collected without aborting the others.
func WarmEvents(ctx context.Context, svc *SolveEventService, eventIDs []string) error {
	if len(eventIDs) == 0 {
		return nil
	}

	const maxConcurrent = 5
	sem := make(chan struct{}, maxConcurrent)
	resultsCh := make(chan warmResult, len(eventIDs))
	var wg sync.WaitGroup

	for _, id := range eventIDs {
		wg.Add(1)
		go func(eventID string) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if _, err := svc.SolveEvent(ctx, eventID); err != nil {
				resultsCh <- warmResult{eventID: eventID, err: fmt.Errorf("warm event %q: %w", eventID, err)}
				return
			}
			resultsCh <- warmResult{eventID: eventID}
		}(id)
	}

	wg.Wait()
	close(resultsCh)

	var firstErr error
	for res := range resultsCh {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
	}
	return firstErr
}
