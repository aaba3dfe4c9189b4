package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghuser/storefront/pkg/logger"
	"github.com/ghuser/storefront/pkg/metrics"
	merchantdomain "github.com/ghuser/storefront/services/merchant/domain"
	"github.com/ghuser/storefront/services/merchant/domain/models"
	"github.com/ghuser/storefront/services/merchant/domain/repositories"
)

// Search modes recorded on storefront_merchant_searches_total.
const (
	SearchFind    = "find"
	SearchFindAll = "find_all"
)

// MerchantService serves merchant reads and name searches.
type MerchantService struct {
	repo    repositories.MerchantRepository
	metrics *metrics.Metrics
	log     logger.Logger
}

// NewMerchantService returns a MerchantService over repo. m and log may be nil.
func NewMerchantService(repo repositories.MerchantRepository, m *metrics.Metrics, log logger.Logger) *MerchantService {
	if log == nil {
		log = logger.Nop()
	}
	return &MerchantService{repo: repo, metrics: m, log: log}
}

// List returns all merchants ordered by id.
func (s *MerchantService) List(ctx context.Context) ([]*models.Merchant, error) {
	merchants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w", err)
	}
	return merchants, nil
}

// GetByID returns ErrMerchantNotFound if no merchant has id.
func (s *MerchantService) GetByID(ctx context.Context, id int64) (*models.Merchant, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get merchant: %w", err)
	}
	return m, nil
}

// Exists reports whether a merchant with id exists. The item context uses it
// to validate ownership.
func (s *MerchantService) Exists(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check merchant: %w", err)
	}
	return ok, nil
}

// FindByName returns the first merchant whose name contains query,
// ignoring case. ok is false when nothing matches; that is not an error.
func (s *MerchantService) FindByName(ctx context.Context, query string) (m *models.Merchant, ok bool, err error) {
	m, err = s.repo.FindFirstByName(ctx, query)
	switch {
	case errors.Is(err, merchantdomain.ErrMerchantNotFound):
		s.metrics.MerchantSearch(SearchFind, false)
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("find merchant: %w", err)
	}
	s.metrics.MerchantSearch(SearchFind, true)
	return m, true, nil
}

// FindAllByName returns every merchant whose name contains query, ordered by
// name. The result is empty, never nil, when nothing matches.
func (s *MerchantService) FindAllByName(ctx context.Context, query string) ([]*models.Merchant, error) {
	ms, err := s.repo.FindAllByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find merchants: %w", err)
	}
	if ms == nil {
		ms = []*models.Merchant{}
	}
	s.metrics.MerchantSearch(SearchFindAll, len(ms) > 0)
	return ms, nil
}

// Create validates name and persists a new merchant.
func (s *MerchantService) Create(ctx context.Context, name string) (*models.Merchant, error) {
	n, err := models.NewMerchantName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", merchantdomain.ErrInvalidMerchantName, err)
	}
	m := models.NewMerchant(n)
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("save merchant: %w", err)
	}
	s.log.InfoContext(ctx, "merchant created", "merchant_id", m.ID)
	return m, nil
}
