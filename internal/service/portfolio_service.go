package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"folio-be/internal/apperr"
	"folio-be/internal/cache"
	"folio-be/internal/entities"
	"folio-be/internal/models"
	"folio-be/internal/repository"
)

// portfolioCacheTTL keeps cached fetches short-lived; the store is always
// the source of truth and a replace invalidates the entry anyway.
const portfolioCacheTTL = 60 * time.Second

// PortfolioService defines the interface for portfolio business logic
type PortfolioService interface {
	Fetch(userID string) ([]*models.HoldingResponse, error)
	Replace(req *models.ReplacePortfolioRequest) error
}

type portfolioService struct {
	repo  repository.PortfolioRepository
	cache cache.Cache
	ctx   context.Context
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(repo repository.PortfolioRepository, cacheClient cache.Cache) PortfolioService {
	svc := &portfolioService{
		repo: repo,
		ctx:  context.Background(),
	}
	// Only set cache if provided (allows graceful degradation)
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

func portfolioCacheKey(userID string) string {
	return fmt.Sprintf("portfolio:user:%s", userID)
}

// Fetch returns every holding owned by the user, in the external camelCase
// shape. An empty portfolio is an empty array, never null.
func (s *portfolioService) Fetch(userID string) ([]*models.HoldingResponse, error) {
	if userID == "" {
		return nil, apperr.Validation("UserId query parameter is required!")
	}

	// Try cache first (if available)
	if s.cache != nil {
		var cached []*models.HoldingResponse
		if err := s.cache.GetJSON(s.ctx, portfolioCacheKey(userID), &cached); err == nil && cached != nil {
			return cached, nil
		}
	}

	holdings, err := s.repo.FindByUserID(userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch portfolio", err)
	}

	responses := make([]*models.HoldingResponse, len(holdings))
	for i, h := range holdings {
		responses[i] = &models.HoldingResponse{
			ID:            h.ID,
			UserID:        h.UserID,
			ProductID:     h.ProductID,
			ProductName:   h.ProductName,
			Quantity:      h.Quantity,
			AvgBuyPrice:   h.AvgBuyPrice,
			TotalInvested: h.TotalInvested,
			CreatedAt:     h.CreatedAt,
			UpdatedAt:     h.UpdatedAt,
		}
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(s.ctx, portfolioCacheKey(userID), responses, portfolioCacheTTL); err != nil {
			log.Printf("Warning: failed to cache portfolio for user %s: %v", userID, err)
		}
	}

	return responses, nil
}

// Replace swaps the user's entire holdings set for the submitted one.
// Invalid items are skipped, not fatal: the rest of the batch still lands.
// An empty or absent list empties the portfolio.
func (s *portfolioService) Replace(req *models.ReplacePortfolioRequest) error {
	if req.UserID == "" {
		return apperr.Validation("UserId is required!")
	}

	// Per-item validation happens before the store is touched, so a bad
	// item can never leave the replace half-applied.
	valid := make([]*entities.Holding, 0, len(req.Portfolio))
	for _, item := range req.Portfolio {
		if !item.Valid() {
			log.Printf("Skipping invalid portfolio item for user %s: %+v", req.UserID, item)
			continue
		}
		valid = append(valid, &entities.Holding{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			AvgBuyPrice:   item.AvgBuyPrice,
			TotalInvested: item.TotalInvested,
		})
	}

	if err := s.repo.ReplaceForUser(req.UserID, valid); err != nil {
		return apperr.Internal("failed to replace portfolio", err)
	}

	// Invalidate cached fetches so the next read sees the new set
	if s.cache != nil {
		if err := s.cache.Delete(s.ctx, portfolioCacheKey(req.UserID)); err != nil {
			log.Printf("Warning: failed to invalidate portfolio cache for user %s: %v", req.UserID, err)
		}
	}

	return nil
}
