package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	technicianerrors "shoptrack/internal/technicians/errors"
	"shoptrack/internal/technicians/repository"
	"shoptrack/internal/technicians/validator"
	"shoptrack/pkg/config"
	apperrors "shoptrack/pkg/errors"
	"shoptrack/pkg/locale"
	"shoptrack/pkg/model"
	"shoptrack/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type TechnicianService interface {
	Create(ctx context.Context, tech *model.Technician) error
	GetByID(ctx context.Context, id string) (*model.Technician, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Technician, int64, error)
	Update(ctx context.Context, id string, updates *model.TechnicianUpdate) error
	Delete(ctx context.Context, id string) error

	GetByShop(ctx context.Context, shopID string, limit int, offset int64) ([]*model.Technician, int64, error)
	Search(ctx context.Context, shopID string, specialties []string, limit int, offset int64) ([]*model.Technician, int64, error)
}

type technicianService struct {
	repo      repository.TechnicianRepository
	validator *validator.TechnicianValidator
	cfg       *config.Config
}

func NewTechnicianService(
	repo repository.TechnicianRepository,
	validator *validator.TechnicianValidator,
	cfg *config.Config,
) TechnicianService {
	return &technicianService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *technicianService) Create(ctx context.Context, tech *model.Technician) error {
	s.sanitize(tech)
	s.applyDefaults(tech)

	if err := s.validator.Validate(tech); err != nil {
		s.cfg.Log.Warn("Technician validation failed",
			"name", tech.Name,
			"shop_id", tech.ShopID,
			"error", err,
		)
		return apperrors.Validation("Technician validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByShop(sessCtx, tech.ShopID, config.DefaultMaxOverlapFetch, 0)
		if err != nil {
			return fmt.Errorf("failed to check for duplicates: %w", err)
		}

		for _, e := range existing {
			if e.Phone == tech.Phone {
				return apperrors.Conflict(fmt.Sprintf(
					"Technician with phone %s already exists in this shop (id: %s)",
					tech.Phone, e.ID,
				))
			}
		}

		if err := s.repo.Create(sessCtx, tech); err != nil {
			return fmt.Errorf("failed to create technician: %w", err)
		}

		return nil
	})

	if err != nil {
		s.cfg.Log.Error("Failed to create technician",
			"name", tech.Name,
			"shop_id", tech.ShopID,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Technician created successfully",
		"id", tech.ID,
		"name", tech.Name,
		"shop_id", tech.ShopID,
		"skill_level", tech.SkillLevel,
	)

	return nil
}

func (s *technicianService) GetByID(ctx context.Context, id string) (*model.Technician, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Technician ID cannot be empty")
	}

	tech, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, technicianerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Technician", id)
		}
		if errors.Is(err, technicianerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid technician ID format")
		}
		s.cfg.Log.Error("Failed to get technician by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve technician", err)
	}

	return tech, nil
}

func (s *technicianService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Technician, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var technicians []*model.Technician
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count technicians", "error", err)
			errCount = apperrors.Internal("Failed to count technicians", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		technicians, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list technicians",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve technicians", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return technicians, count, nil
}

func (s *technicianService) Update(ctx context.Context, id string, updates *model.TechnicianUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Technician ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, technicianerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Technician", id)
		}
		if errors.Is(err, technicianerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid technician ID format")
		}
		return apperrors.Internal("Failed to check technician existence", err)
	}

	s.sanitizeUpdate(updates)
	merged := s.mergeUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Technician validation failed",
			"id", id,
			"name", merged.Name,
			"error", err,
		)
		return apperrors.Validation("Technician validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update technician", "id", id, "error", err)
		return apperrors.Internal("Failed to update technician", err)
	}
	s.cfg.Log.Info("Technician updated successfully", "id", id, "name", merged.Name)

	return nil
}

func (s *technicianService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Technician ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, technicianerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Technician", id)
		}
		if errors.Is(err, technicianerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid technician ID format")
		}
		s.cfg.Log.Error("Failed to delete technician", "id", id, "error", err)
		return apperrors.Internal("Failed to delete technician", err)
	}

	s.cfg.Log.Info("Technician deleted successfully", "id", id)

	return nil
}

func (s *technicianService) GetByShop(ctx context.Context, shopID string, limit int, offset int64) ([]*model.Technician, int64, error) {
	if shopID == "" {
		return nil, 0, apperrors.InvalidInput("Shop ID cannot be empty")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var technicians []*model.Technician
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByShop(ctx, shopID)
		if err != nil {
			s.cfg.Log.Error("Failed to count technicians by shop", "shop_id", shopID, "error", err)
			errCount = apperrors.Internal("Failed to count technicians", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		technicians, err = s.repo.FindByShop(ctx, shopID, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to get technicians by shop", "shop_id", shopID, "error", err)
			errFind = apperrors.Internal("Failed to retrieve technicians", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return technicians, count, nil
}

func (s *technicianService) Search(ctx context.Context, shopID string, specialties []string, limit int, offset int64) ([]*model.Technician, int64, error) {
	if shopID == "" {
		return nil, 0, apperrors.InvalidInput("Shop ID cannot be empty")
	}

	original := append([]string(nil), specialties...)
	specialties = sanitizer.NormalizeSpecialties(specialties)
	if len(original) > 0 && len(specialties) == 0 {
		s.cfg.Log.Warn("Search specialties normalized to empty",
			"original_specialties", original,
		)
		return nil, 0, apperrors.InvalidInput("Search criteria resulted in no valid specialties after normalization")
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var technicians []*model.Technician
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountBySearch(ctx, shopID, specialties)
		if err != nil {
			s.cfg.Log.Error("Failed to count technicians by search",
				"shop_id", shopID,
				"specialties", specialties,
				"error", err,
			)
			errCount = apperrors.Internal("Failed to count technicians", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		technicians, err = s.repo.Search(ctx, shopID, specialties, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search technicians",
				"shop_id", shopID,
				"specialties", specialties,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to search technicians", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	s.cfg.Log.Debug("Technician search completed",
		"shop_id", shopID,
		"specialties", specialties,
		"results_count", len(technicians),
	)

	return technicians, count, nil
}

func (s *technicianService) sanitize(tech *model.Technician) {
	tech.Name = sanitizer.NormalizeName(tech.Name)
	tech.Phone = sanitizer.NormalizePhone(tech.Phone)
	tech.Specialties = sanitizer.NormalizeSpecialties(tech.Specialties)
	tech.MaxDailyHours = sanitizer.ClampDailyHours(tech.MaxDailyHours)
	tech.TimeZone = sanitizer.TrimAndNormalize(tech.TimeZone)
}

func (s *technicianService) sanitizeUpdate(updates *model.TechnicianUpdate) {
	if updates.Name != "" {
		updates.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Phone != "" {
		updates.Phone = sanitizer.NormalizePhone(updates.Phone)
	}
	if updates.Specialties != nil {
		if len(*updates.Specialties) == 0 {
			s.cfg.Log.Warn("Attempted to update specialties with empty array")
		} else {
			normalized := sanitizer.NormalizeSpecialties(*updates.Specialties)
			updates.Specialties = &normalized
		}
	}
	if updates.MaxDailyHours != nil {
		clamped := sanitizer.ClampDailyHours(*updates.MaxDailyHours)
		updates.MaxDailyHours = &clamped
	}
	if updates.TimeZone != "" {
		updates.TimeZone = sanitizer.TrimAndNormalize(updates.TimeZone)
	}
}

func (s *technicianService) applyDefaults(tech *model.Technician) {
	if tech.Status == "" {
		tech.Status = model.TechnicianActive
	}
	if tech.SkillLevel == "" {
		tech.SkillLevel = model.SkillBeginner
	}
	if tech.MaxDailyHours == 0 {
		tech.MaxDailyHours = s.cfg.DefaultMaxDailyHours
	}
	if tech.TimeZone == "" {
		tech.TimeZone = locale.InferTimezoneFromPhone(tech.Phone)
	}
}

func (s *technicianService) mergeUpdates(existing *model.Technician, updates *model.TechnicianUpdate) *model.Technician {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Phone != "" {
		merged.Phone = updates.Phone
	}
	if updates.Specialties != nil {
		merged.Specialties = *updates.Specialties
	}
	if updates.SkillLevel != "" {
		merged.SkillLevel = updates.SkillLevel
	}
	if updates.MaxDailyHours != nil {
		merged.MaxDailyHours = *updates.MaxDailyHours
	}
	if updates.Status != "" {
		merged.Status = updates.Status
	}
	if updates.TimeZone != "" {
		merged.TimeZone = updates.TimeZone
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt

	return &merged
}
