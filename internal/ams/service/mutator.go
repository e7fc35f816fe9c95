package service

import (
	"context"
	"sync"

	"github.com/brandonyach/amsadmin/internal/ams/model"
)

// applyUpdates validates and saves each resolved row. Rows are independent;
// one failure never stops the rest. With workers > 1 saves run on a bounded
// pool, but results land in per-index slots so the report keeps attempt
// order regardless of scheduling.
func (s *Service) applyUpdates(ctx context.Context, resolved []model.ResolvedUpdate, key model.UserKey, field model.Field) model.Report {
	if len(resolved) == 0 {
		return nil
	}
	s.logger.Info("applying updates", "users", len(resolved), "field", string(field.Kind))

	results := make([]*model.FailureRecord, len(resolved))
	if s.workers <= 1 {
		for i, upd := range resolved {
			results[i] = s.applyOne(ctx, upd, key, field)
		}
	} else {
		sem := make(chan struct{}, s.workers)
		var wg sync.WaitGroup
		for i, upd := range resolved {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, upd model.ResolvedUpdate) {
				defer wg.Done()
				results[i] = s.applyOne(ctx, upd, key, field)
				<-sem
			}(i, upd)
		}
		wg.Wait()
	}

	var failures model.Report
	for _, r := range results {
		if r != nil {
			failures = append(failures, *r)
		}
	}
	return failures
}

func (s *Service) applyOne(ctx context.Context, upd model.ResolvedUpdate, key model.UserKey, field model.Field) *model.FailureRecord {
	identifier := upd.Row.Value(string(key))

	value, err := field.Convert(upd.NewValue)
	if err != nil {
		// Malformed value: short-circuit without the network call.
		return &model.FailureRecord{
			UserID:  identifier,
			UserKey: upd.Person.ID,
			Reason:  err.Error(),
		}
	}

	if err := s.saver.SavePerson(ctx, upd.Person.Payload(field.APIField, value)); err != nil {
		s.logger.Warn("failed to update user",
			"user_id", identifier, "user_key", upd.Person.ID, "error", err)
		return &model.FailureRecord{
			UserID:  identifier,
			UserKey: upd.Person.ID,
			Reason:  err.Error(),
		}
	}
	return nil
}
