package service

import (
	"context"
	"testing"
	"time"

	"shoptrack/internal/technicians/repository"
	"shoptrack/internal/technicians/validator"
	"shoptrack/pkg/config"
	mongotx "shoptrack/pkg/db/mongo"
	apperrors "shoptrack/pkg/errors"
	"shoptrack/pkg/logger"
	"shoptrack/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// ────────────────────────────────────────────────
// Mock repository
// ────────────────────────────────────────────────

type mockTechnicianRepository struct {
	createFunc     func(ctx context.Context, tech *model.Technician) error
	findByShopFunc func(ctx context.Context, shopID string, limit int, offset int64) ([]*model.Technician, error)
	searchFunc     func(ctx context.Context, shopID string, specialties []string, limit int, offset int64) ([]*model.Technician, error)
	countFunc      func(ctx context.Context) (int64, error)
	findAllFunc    func(ctx context.Context, limit int, offset int64) ([]*model.Technician, error)
}

func (m *mockTechnicianRepository) Create(ctx context.Context, tech *model.Technician) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, tech)
	}
	return nil
}

func (m *mockTechnicianRepository) FindByID(ctx context.Context, id string) (*model.Technician, error) {
	return nil, nil
}

func (m *mockTechnicianRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Technician, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Technician{}, nil
}

func (m *mockTechnicianRepository) Update(ctx context.Context, id string, tech *model.Technician) (*mongo.UpdateResult, error) {
	return nil, nil
}

func (m *mockTechnicianRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockTechnicianRepository) FindByShop(ctx context.Context, shopID string, limit int, offset int64) ([]*model.Technician, error) {
	if m.findByShopFunc != nil {
		return m.findByShopFunc(ctx, shopID, limit, offset)
	}
	return []*model.Technician{}, nil
}

func (m *mockTechnicianRepository) CountByShop(ctx context.Context, shopID string) (int64, error) {
	return 0, nil
}

func (m *mockTechnicianRepository) Search(ctx context.Context, shopID string, specialties []string, limit int, offset int64) ([]*model.Technician, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, shopID, specialties, limit, offset)
	}
	return []*model.Technician{}, nil
}

func (m *mockTechnicianRepository) CountBySearch(ctx context.Context, shopID string, specialties []string) (int64, error) {
	return 0, nil
}

func (m *mockTechnicianRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockTechnicianRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

// ────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:                  log,
		ReadTimeout:          5 * time.Second,
		DefaultMaxDailyHours: 8,
	}
}

func newTestService(repo repository.TechnicianRepository, cfg *config.Config) TechnicianService {
	return NewTechnicianService(repo, validator.NewTechnicianValidator(cfg.Log), cfg)
}

const testShopID = "507f1f77bcf86cd799439011"

func validTechnician() *model.Technician {
	return &model.Technician{
		ShopID:      testShopID,
		Name:        "Dana Reyes",
		Phone:       "+14155552671",
		Specialties: []string{"brakes", "engine"},
		SkillLevel:  model.SkillExpert,
	}
}

// ────────────────────────────────────────────────
// Tests
// ────────────────────────────────────────────────

func TestCreate_AppliesDefaults(t *testing.T) {
	var created *model.Technician
	mockRepo := &mockTechnicianRepository{
		createFunc: func(ctx context.Context, tech *model.Technician) error {
			created = tech
			return nil
		},
	}
	service := newTestService(mockRepo, testConfig())

	tech := validTechnician()
	if err := service.Create(context.Background(), tech); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("expected repository Create to be called")
	}
	if created.Status != model.TechnicianActive {
		t.Errorf("expected default status %q, got %q", model.TechnicianActive, created.Status)
	}
	if created.MaxDailyHours != 8 {
		t.Errorf("expected default max daily hours 8, got %g", created.MaxDailyHours)
	}
	if created.TimeZone == "" {
		t.Error("expected timezone to be inferred from phone")
	}
}

func TestCreate_NormalizesSpecialties(t *testing.T) {
	var created *model.Technician
	mockRepo := &mockTechnicianRepository{
		createFunc: func(ctx context.Context, tech *model.Technician) error {
			created = tech
			return nil
		},
	}
	service := newTestService(mockRepo, testConfig())

	tech := validTechnician()
	tech.Specialties = []string{"  Brakes ", "ENGINE", "brakes"}

	if err := service.Create(context.Background(), tech); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(created.Specialties) != 2 {
		t.Fatalf("expected 2 specialties after normalization, got %v", created.Specialties)
	}
	for _, s := range created.Specialties {
		if s != "brakes" && s != "engine" {
			t.Errorf("unexpected specialty %q", s)
		}
	}
}

func TestCreate_DuplicatePhoneInShop(t *testing.T) {
	mockRepo := &mockTechnicianRepository{
		findByShopFunc: func(ctx context.Context, shopID string, limit int, offset int64) ([]*model.Technician, error) {
			return []*model.Technician{
				{ID: "existing", Phone: "+14155552671"},
			}, nil
		},
		createFunc: func(ctx context.Context, tech *model.Technician) error {
			t.Error("Create should not be reached for a duplicate phone")
			return nil
		},
	}
	service := newTestService(mockRepo, testConfig())

	err := service.Create(context.Background(), validTechnician())
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error code, got %v", appErr.Code)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	service := newTestService(&mockTechnicianRepository{}, testConfig())

	tech := validTechnician()
	tech.Specialties = nil

	err := service.Create(context.Background(), tech)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error code, got %v", appErr.Code)
	}
}

func TestSearch_RequiresShopID(t *testing.T) {
	service := newTestService(&mockTechnicianRepository{}, testConfig())

	_, _, err := service.Search(context.Background(), "", []string{"brakes"}, 10, 0)
	if err == nil {
		t.Fatal("expected invalid input error, got nil")
	}
}

func TestSearch_NormalizesSpecialties(t *testing.T) {
	var gotSpecialties []string
	mockRepo := &mockTechnicianRepository{
		searchFunc: func(ctx context.Context, shopID string, specialties []string, limit int, offset int64) ([]*model.Technician, error) {
			gotSpecialties = specialties
			return []*model.Technician{}, nil
		},
	}
	service := newTestService(mockRepo, testConfig())

	_, _, err := service.Search(context.Background(), testShopID, []string{" Brakes ", "ENGINE"}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotSpecialties) != 2 {
		t.Fatalf("expected 2 normalized specialties, got %v", gotSpecialties)
	}
	if gotSpecialties[0] != "brakes" && gotSpecialties[1] != "brakes" {
		t.Errorf("expected normalized 'brakes' in %v", gotSpecialties)
	}
}

func TestGetAll_ConcurrentAccess(t *testing.T) {
	mockRepo := &mockTechnicianRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 7, nil
		},
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Technician, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.Technician{
				{ID: "1", Name: "Tech 1"},
			}, nil
		},
	}
	service := newTestService(mockRepo, testConfig())

	for i := 0; i < 10; i++ {
		technicians, count, err := service.GetAll(context.Background(), 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 7 {
			t.Errorf("iteration %d: expected count 7, got %d", i, count)
		}
		if len(technicians) != 1 {
			t.Errorf("iteration %d: expected 1 technician, got %d", i, len(technicians))
		}
	}
}
