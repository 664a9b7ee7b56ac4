package coaching

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/algority/algority/internal/catalog"
	"github.com/algority/algority/internal/mastery"
)

// PatternSummary aggregates per-pattern mastery across every completed
// session, loading transcripts concurrently.
func (s *Service) PatternSummary(ctx context.Context) (map[string]*mastery.PatternMastery, error) {
	sessions, err := s.sessions.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	results := make([]mastery.SessionResult, 0, len(sessions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, rec := range sessions {
		g.Go(func() error {
			problem, err := catalog.GetProblem(rec.ProblemID)
			if err != nil {
				// A session for a problem no longer in the catalog
				// contributes nothing.
				return nil
			}
			msgs, err := s.messages.List(gctx, rec.ID)
			if err != nil {
				return err
			}
			res := mastery.ResultFromMessages(problem.PatternIDs, msgs)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mastery.Aggregate(results), nil
}

// ProblemStatuses derives each catalog problem's completion status from
// stored sessions.
func (s *Service) ProblemStatuses(ctx context.Context) (map[string]catalog.CompletionStatus, error) {
	completed, err := s.sessions.CompletedByProblem(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]catalog.CompletionStatus)
	for _, p := range catalog.AllProblems() {
		switch {
		case completed[p.ID] > 0:
			out[p.ID] = catalog.StatusSolved
		default:
			rec, err := s.sessions.Incomplete(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			if rec != nil {
				out[p.ID] = catalog.StatusAttempted
			} else {
				out[p.ID] = catalog.StatusUntouched
			}
		}
	}
	return out, nil
}
