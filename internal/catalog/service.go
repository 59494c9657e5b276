package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const fetchTimeout = 10 * time.Second

// Service fronts the catalog repository. The whole collection is fetched per
// request; singleflight collapses concurrent fetches into one round trip.
type Service struct {
	repo   Repository
	logger *zap.Logger
	sfg    singleflight.Group
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	v, err, _ := s.sfg.Do("catalog", func() (interface{}, error) {
		// The fetch is shared by every coalesced caller, so it must not die
		// with whichever caller happened to start it.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return s.repo.ListProducts(fetchCtx)
	})
	if err != nil {
		s.logger.Error("catalog fetch failed", zap.Error(err))
		return nil, err
	}
	return v.([]Product), nil
}
