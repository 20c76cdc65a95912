package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wganko/liff-for-auto-responce/cache"
	"github.com/wganko/liff-for-auto-responce/models"
	"github.com/wganko/liff-for-auto-responce/repositories"
	"golang.org/x/sync/singleflight"
)

// FormConfigService serves form display metadata from the config table,
// through a read-through cache.
type FormConfigService struct {
	repo   repositories.FormConfigRepository
	cache  cache.FormConfigCache
	group  singleflight.Group
	logger *slog.Logger
}

func NewFormConfigService(repo repositories.FormConfigRepository, c cache.FormConfigCache, logger *slog.Logger) *FormConfigService {
	if c == nil {
		c = cache.NewNoopFormConfigCache()
	}
	return &FormConfigService{repo: repo, cache: c, logger: logger}
}

// Get returns the active configuration of formID or ErrConfigNotFound.
func (s *FormConfigService) Get(ctx context.Context, formID string) (*models.FormConfig, error) {
	if formID == "" {
		return nil, fmt.Errorf("%w: empty form id", ErrConfigNotFound)
	}

	cached, err := s.cache.Get(ctx, formID)
	if err != nil {
		s.logger.Warn("form config cache read failed", slog.String("form_id", formID), slog.Any("error", err))
	} else if cached != nil {
		return cached, nil
	}

	// Coalesced callers share the lookup, so one caller's cancellation must not fail the rest.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(formID, func() (interface{}, error) {
		fc, err := s.repo.GetByFormID(shared, formID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(shared, fc); err != nil {
			s.logger.Warn("form config cache write failed", slog.String("form_id", formID), slog.Any("error", err))
		}
		return fc, nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrFormConfigNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, formID)
		}
		return nil, fmt.Errorf("%w: read form config %s: %w", ErrStorageUnavailable, formID, err)
	}
	fc := *v.(*models.FormConfig)
	return &fc, nil
}
