package service

import (
	"context"
	"strings"

	"lenslend-backend/internal/domain"
	"lenslend-backend/internal/repository"
)

type gearService struct {
	gearRepo repository.GearRepository
}

func NewGearService(gearRepo repository.GearRepository) GearService {
	return &gearService{gearRepo: gearRepo}
}

func (s *gearService) AddGear(ctx context.Context, gear *domain.Gear) error {
	if strings.TrimSpace(gear.Name) == "" {
		return domain.Validationf("gear name is required")
	}
	if gear.DailyRateCents <= 0 {
		return domain.Validationf("daily rate must be positive")
	}
	if gear.Status == "" {
		gear.Status = domain.GearStatusAvailable
	}
	return s.gearRepo.Create(ctx, gear)
}

func (s *gearService) GetGear(ctx context.Context, id int32) (*domain.Gear, error) {
	return s.gearRepo.GetByID(ctx, id)
}

func (s *gearService) UpdateGear(ctx context.Context, actingUserID int32, gear *domain.Gear) (*domain.Gear, error) {
	existing, err := s.gearRepo.GetByID(ctx, gear.ID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != actingUserID {
		return nil, domain.Forbiddenf("user %d does not own gear %d", actingUserID, gear.ID)
	}

	if strings.TrimSpace(gear.Name) != "" {
		existing.Name = gear.Name
	}
	if gear.Category != "" {
		existing.Category = gear.Category
	}
	if gear.Description != "" {
		existing.Description = gear.Description
	}
	if gear.Condition != "" {
		existing.Condition = gear.Condition
	}
	if gear.DailyRateCents > 0 {
		existing.DailyRateCents = gear.DailyRateCents
	}
	if gear.Status != "" {
		existing.Status = gear.Status
	}

	if err := s.gearRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *gearService) DeleteGear(ctx context.Context, actingUserID, id int32) error {
	existing, err := s.gearRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != actingUserID {
		return domain.Forbiddenf("user %d does not own gear %d", actingUserID, id)
	}
	return s.gearRepo.Delete(ctx, id)
}

func (s *gearService) ListMyGear(ctx context.Context, userID, page, pageSize int32) ([]domain.Gear, int32, error) {
	return s.gearRepo.ListByOwner(ctx, userID, normalizePage(page), normalizePageSize(pageSize))
}

func (s *gearService) SearchGear(ctx context.Context, query, category string, maxDailyRateCents, page, pageSize int32) ([]domain.Gear, int32, error) {
	return s.gearRepo.Search(ctx, query, category, maxDailyRateCents, normalizePage(page), normalizePageSize(pageSize))
}

func (s *gearService) SaveGear(ctx context.Context, userID, gearID int32) error {
	if _, err := s.gearRepo.GetByID(ctx, gearID); err != nil {
		return err
	}
	return s.gearRepo.Save(ctx, userID, gearID)
}

func (s *gearService) UnsaveGear(ctx context.Context, userID, gearID int32) error {
	return s.gearRepo.Unsave(ctx, userID, gearID)
}

func (s *gearService) ListSavedGear(ctx context.Context, userID int32) ([]domain.Gear, error) {
	return s.gearRepo.ListSaved(ctx, userID)
}

func normalizePage(page int32) int32 {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePageSize(pageSize int32) int32 {
	if pageSize < 1 || pageSize > 100 {
		return 20
	}
	return pageSize
}
