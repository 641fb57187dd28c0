package service

import (
	"context"
	"testing"
	"time"

	workordererrors "shoptrack/internal/workorders/errors"
	"shoptrack/internal/workorders/repository"
	"shoptrack/internal/workorders/validator"
	"shoptrack/pkg/config"
	mongotx "shoptrack/pkg/db/mongo"
	apperrors "shoptrack/pkg/errors"
	"shoptrack/pkg/events"
	"shoptrack/pkg/logger"
	"shoptrack/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// ────────────────────────────────────────────────
// Mock repositories
// ────────────────────────────────────────────────

type mockWorkOrderRepository struct {
	createFunc           func(ctx context.Context, order *model.WorkOrder) error
	findByIDFunc         func(ctx context.Context, id string) (*model.WorkOrder, error)
	findAllFunc          func(ctx context.Context, limit int, offset int64) ([]*model.WorkOrder, error)
	searchFunc           func(ctx context.Context, filter repository.SearchFilter, limit int, offset int64) ([]*model.WorkOrder, error)
	updateStatusFunc     func(ctx context.Context, id string, status string) error
	updateAssignmentFunc func(ctx context.Context, id string, assignment *model.Assignment) error
	countFunc            func(ctx context.Context) (int64, error)
}

func (m *mockWorkOrderRepository) Create(ctx context.Context, order *model.WorkOrder) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, order)
	}
	return nil
}

func (m *mockWorkOrderRepository) FindByID(ctx context.Context, id string) (*model.WorkOrder, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, workordererrors.ErrNotFound
}

func (m *mockWorkOrderRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.WorkOrder, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.WorkOrder{}, nil
}

func (m *mockWorkOrderRepository) Update(ctx context.Context, id string, order *model.WorkOrder) (*mongo.UpdateResult, error) {
	return nil, nil
}

func (m *mockWorkOrderRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockWorkOrderRepository) UpdateAssignment(ctx context.Context, id string, assignment *model.Assignment) error {
	if m.updateAssignmentFunc != nil {
		return m.updateAssignmentFunc(ctx, id, assignment)
	}
	return nil
}

func (m *mockWorkOrderRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockWorkOrderRepository) Search(ctx context.Context, filter repository.SearchFilter, limit int, offset int64) ([]*model.WorkOrder, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, filter, limit, offset)
	}
	return []*model.WorkOrder{}, nil
}

func (m *mockWorkOrderRepository) CountBySearch(ctx context.Context, filter repository.SearchFilter) (int64, error) {
	return 0, nil
}

func (m *mockWorkOrderRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockWorkOrderRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockSlotLockRepository struct {
	createFunc func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error)
	released   []string
}

func (m *mockSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	m.released = append(m.released, lockID)
	return nil
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
		Log:                   log,
		SlotLockTTL:           10 * time.Second,
		DefaultJobDurationMin: 60,
	}
}

func newTestService(repo repository.WorkOrderRepository, locks repository.SlotLockRepository, cfg *config.Config) WorkOrderService {
	v := validator.NewWorkOrderValidator(cfg.Log)
	return NewWorkOrderService(repo, locks, v, events.NewNopPublisher(), cfg)
}

const (
	testShopID     = "507f1f77bcf86cd799439011"
	testCustomerID = "507f1f77bcf86cd799439012"
	testTechID     = "507f1f77bcf86cd799439013"
	testOrderID    = "507f1f77bcf86cd799439014"
)

func validOrder(start, end time.Time) *model.WorkOrder {
	return &model.WorkOrder{
		ShopID:       testShopID,
		CustomerID:   testCustomerID,
		TechnicianID: testTechID,
		ServiceLabel: "Brake pad replacement",
		StartTime:    start,
		EndTime:      end,
	}
}

// ────────────────────────────────────────────────
// Tests for Create()
// ────────────────────────────────────────────────

func TestCreate_AppliesDefaults(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	var created *model.WorkOrder
	mockRepo := &mockWorkOrderRepository{
		createFunc: func(ctx context.Context, order *model.WorkOrder) error {
			created = order
			return nil
		},
	}
	locks := &mockSlotLockRepository{}
	service := newTestService(mockRepo, locks, testConfig())

	order := validOrder(start, time.Time{})
	if err := service.Create(context.Background(), order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("expected repository Create to be called")
	}
	if created.Status != model.StatusScheduled {
		t.Errorf("expected default status %q, got %q", model.StatusScheduled, created.Status)
	}
	if created.Priority != model.PriorityNormal {
		t.Errorf("expected default priority %q, got %q", model.PriorityNormal, created.Priority)
	}
	want := start.Add(60 * time.Minute)
	if !created.EndTime.Equal(want) {
		t.Errorf("expected default end time %v, got %v", want, created.EndTime)
	}
	if len(locks.released) == 0 {
		t.Error("expected slot locks to be released after create")
	}
}

func TestCreate_RejectsOverlap(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	mockRepo := &mockWorkOrderRepository{
		searchFunc: func(ctx context.Context, filter repository.SearchFilter, limit int, offset int64) ([]*model.WorkOrder, error) {
			return []*model.WorkOrder{
				{
					ID:        testOrderID,
					StartTime: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
					EndTime:   time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC),
					Status:    model.StatusScheduled,
				},
			}, nil
		},
		createFunc: func(ctx context.Context, order *model.WorkOrder) error {
			t.Error("Create should not be reached when the window overlaps")
			return nil
		},
	}
	service := newTestService(mockRepo, &mockSlotLockRepository{}, testConfig())

	err := service.Create(context.Background(), validOrder(start, end))
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error type, got %v", appErr.Code)
	}
}

func TestCreate_AllowsTouchingWindows(t *testing.T) {
	// An order ending at 10:00 does not block one starting at 10:00.
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mockRepo := &mockWorkOrderRepository{
		searchFunc: func(ctx context.Context, filter repository.SearchFilter, limit int, offset int64) ([]*model.WorkOrder, error) {
			return []*model.WorkOrder{
				{
					ID:        testOrderID,
					StartTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
					EndTime:   time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
					Status:    model.StatusScheduled,
				},
			}, nil
		},
	}
	service := newTestService(mockRepo, &mockSlotLockRepository{}, testConfig())

	if err := service.Create(context.Background(), validOrder(start, end)); err != nil {
		t.Fatalf("touching windows should not conflict, got: %v", err)
	}
}

func TestCreate_IgnoresCancelledOrders(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mockRepo := &mockWorkOrderRepository{
		searchFunc: func(ctx context.Context, filter repository.SearchFilter, limit int, offset int64) ([]*model.WorkOrder, error) {
			return []*model.WorkOrder{
				{
					ID:        testOrderID,
					StartTime: start,
					EndTime:   end,
					Status:    model.StatusCancelled,
				},
			}, nil
		},
	}
	service := newTestService(mockRepo, &mockSlotLockRepository{}, testConfig())

	if err := service.Create(context.Background(), validOrder(start, end)); err != nil {
		t.Fatalf("cancelled orders should not block the slot, got: %v", err)
	}
}

func TestCreate_SlotLockContention(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	locks := &mockSlotLockRepository{
		createFunc: func(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
			return nil, mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000}},
			}
		},
	}
	service := newTestService(&mockWorkOrderRepository{}, locks, testConfig())

	err := service.Create(context.Background(), validOrder(start, end))
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error type for lock contention, got %v", appErr.Code)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	service := newTestService(&mockWorkOrderRepository{}, &mockSlotLockRepository{}, testConfig())

	order := validOrder(start, start.Add(time.Hour))
	order.ServiceLabel = ""

	err := service.Create(context.Background(), order)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error type, got %v", appErr.Code)
	}
}

// ────────────────────────────────────────────────
// Tests for UpdateStatus()
// ────────────────────────────────────────────────

func TestUpdateStatus_ValidTransition(t *testing.T) {
	var gotStatus string
	mockRepo := &mockWorkOrderRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.WorkOrder, error) {
			return &model.WorkOrder{ID: id, ShopID: testShopID, Status: model.StatusScheduled}, nil
		},
		updateStatusFunc: func(ctx context.Context, id string, status string) error {
			gotStatus = status
			return nil
		},
	}
	service := newTestService(mockRepo, &mockSlotLockRepository{}, testConfig())

	if err := service.UpdateStatus(context.Background(), testOrderID, model.StatusInProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStatus != model.StatusInProgress {
		t.Errorf("expected repository to receive %q, got %q", model.StatusInProgress, gotStatus)
	}
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	mockRepo := &mockWorkOrderRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.WorkOrder, error) {
			return &model.WorkOrder{ID: id, ShopID: testShopID, Status: model.StatusCompleted}, nil
		},
		updateStatusFunc: func(ctx context.Context, id string, status string) error {
			t.Error("repository should not be reached for an invalid transition")
			return nil
		},
	}
	service := newTestService(mockRepo, &mockSlotLockRepository{}, testConfig())

	err := service.UpdateStatus(context.Background(), testOrderID, model.StatusInProgress)
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error type, got %v", appErr.Code)
	}
}

// ────────────────────────────────────────────────
// Tests for Assign()
// ────────────────────────────────────────────────

func TestAssign_ChecksTechnicianAvailability(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	var searchedTechnician string
	mockRepo := &mockWorkOrderRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.WorkOrder, error) {
			return &model.WorkOrder{
				ID:        id,
				ShopID:    testShopID,
				Status:    model.StatusScheduled,
				StartTime: start,
				EndTime:   end,
			}, nil
		},
		searchFunc: func(ctx context.Context, filter repository.SearchFilter, limit int, offset int64) ([]*model.WorkOrder, error) {
			searchedTechnician = filter.TechnicianID
			return []*model.WorkOrder{
				{ID: "other", StartTime: start, EndTime: end, Status: model.StatusScheduled},
			}, nil
		},
	}
	service := newTestService(mockRepo, &mockSlotLockRepository{}, testConfig())

	err := service.Assign(context.Background(), testOrderID, &model.Assignment{TechnicianID: testTechID})
	if err == nil {
		t.Fatal("expected conflict error when the technician is already booked")
	}
	if searchedTechnician != testTechID {
		t.Errorf("expected availability check against technician %q, got %q", testTechID, searchedTechnician)
	}
}

func TestAssign_RejectsNonScheduledOrder(t *testing.T) {
	mockRepo := &mockWorkOrderRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.WorkOrder, error) {
			return &model.WorkOrder{ID: id, ShopID: testShopID, Status: model.StatusCancelled}, nil
		},
	}
	service := newTestService(mockRepo, &mockSlotLockRepository{}, testConfig())

	err := service.Assign(context.Background(), testOrderID, &model.Assignment{TechnicianID: testTechID})
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error type, got %v", appErr.Code)
	}
}

// ────────────────────────────────────────────────
// Tests for GetAll()
// ────────────────────────────────────────────────

func TestGetAll_ConcurrentAccess(t *testing.T) {
	mockRepo := &mockWorkOrderRepository{
		countFunc: func(ctx context.Context) (int64, error) {
			time.Sleep(10 * time.Millisecond)
			return 42, nil
		},
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.WorkOrder, error) {
			time.Sleep(10 * time.Millisecond)
			return []*model.WorkOrder{
				{ID: "1", ServiceLabel: "Oil change"},
				{ID: "2", ServiceLabel: "Tire rotation"},
			}, nil
		},
	}
	service := newTestService(mockRepo, &mockSlotLockRepository{}, testConfig())

	for i := 0; i < 10; i++ {
		orders, count, err := service.GetAll(context.Background(), 10, 0)
		if err != nil {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if count != 42 {
			t.Errorf("iteration %d: expected count 42, got %d", i, count)
		}
		if len(orders) != 2 {
			t.Errorf("iteration %d: expected 2 orders, got %d", i, len(orders))
		}
	}
}
