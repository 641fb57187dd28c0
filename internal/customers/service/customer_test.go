package service

import (
	"context"
	"testing"
	"time"

	customererrors "shoptrack/internal/customers/errors"
	"shoptrack/internal/customers/repository"
	"shoptrack/internal/customers/validator"
	"shoptrack/pkg/config"
	mongotx "shoptrack/pkg/db/mongo"
	apperrors "shoptrack/pkg/errors"
	"shoptrack/pkg/logger"
	"shoptrack/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockCustomerRepository struct {
	createFunc      func(ctx context.Context, customer *model.Customer) error
	findByIDFunc    func(ctx context.Context, id string) (*model.Customer, error)
	findByPhoneFunc func(ctx context.Context, phone string) ([]*model.Customer, error)
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, customer)
	}
	return nil
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, customererrors.ErrNotFound
}

func (m *mockCustomerRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, error) {
	return []*model.Customer{}, nil
}

func (m *mockCustomerRepository) FindByPhone(ctx context.Context, phone string) ([]*model.Customer, error) {
	if m.findByPhoneFunc != nil {
		return m.findByPhoneFunc(ctx, phone)
	}
	return []*model.Customer{}, nil
}

func (m *mockCustomerRepository) Update(ctx context.Context, id string, customer *model.Customer) (*mongo.UpdateResult, error) {
	return nil, nil
}

func (m *mockCustomerRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockCustomerRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockCustomerRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockVehicleRepository struct {
	createFunc    func(ctx context.Context, vehicle *model.Vehicle) error
	findByVINFunc func(ctx context.Context, vin string) (*model.Vehicle, error)
}

func (m *mockVehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, vehicle)
	}
	return nil
}

func (m *mockVehicleRepository) FindByCustomer(ctx context.Context, customerID string) ([]*model.Vehicle, error) {
	return []*model.Vehicle{}, nil
}

func (m *mockVehicleRepository) FindByVIN(ctx context.Context, vin string) (*model.Vehicle, error) {
	if m.findByVINFunc != nil {
		return m.findByVINFunc(ctx, vin)
	}
	return nil, customererrors.ErrVehicleNotFound
}

func (m *mockVehicleRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:         log,
		ReadTimeout: 5 * time.Second,
	}
}

func newTestService(repo repository.CustomerRepository, vehicles repository.VehicleRepository, cfg *config.Config) CustomerService {
	return NewCustomerService(repo, vehicles, validator.NewCustomerValidator(), cfg)
}

const (
	testShopID     = "507f1f77bcf86cd799439011"
	testCustomerID = "507f1f77bcf86cd799439012"
	// 1HGCM82633A004352 carries a valid check digit.
	testVIN = "1HGCM82633A004352"
)

func validCustomer() *model.Customer {
	return &model.Customer{
		ShopID: testShopID,
		Name:   "Jordan Smith",
		Phone:  "+14155552671",
	}
}

func TestCreate_NormalizesPhone(t *testing.T) {
	var created *model.Customer
	mockRepo := &mockCustomerRepository{
		createFunc: func(ctx context.Context, customer *model.Customer) error {
			created = customer
			return nil
		},
	}
	service := newTestService(mockRepo, &mockVehicleRepository{}, testConfig())

	customer := validCustomer()
	customer.Phone = "+1 (415) 555-2671"

	if err := service.Create(context.Background(), customer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Phone != "+14155552671" {
		t.Errorf("expected normalized phone +14155552671, got %q", created.Phone)
	}
}

func TestCreate_DuplicatePhoneInShop(t *testing.T) {
	mockRepo := &mockCustomerRepository{
		findByPhoneFunc: func(ctx context.Context, phone string) ([]*model.Customer, error) {
			return []*model.Customer{
				{ID: "existing", ShopID: testShopID, Phone: phone},
			}, nil
		},
	}
	service := newTestService(mockRepo, &mockVehicleRepository{}, testConfig())

	err := service.Create(context.Background(), validCustomer())
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

func TestCreate_SamePhoneDifferentShop(t *testing.T) {
	mockRepo := &mockCustomerRepository{
		findByPhoneFunc: func(ctx context.Context, phone string) ([]*model.Customer, error) {
			return []*model.Customer{
				{ID: "existing", ShopID: "507f1f77bcf86cd799439099", Phone: phone},
			}, nil
		},
	}
	service := newTestService(mockRepo, &mockVehicleRepository{}, testConfig())

	if err := service.Create(context.Background(), validCustomer()); err != nil {
		t.Fatalf("same phone in a different shop should not conflict, got: %v", err)
	}
}

func TestAddVehicle_ValidVIN(t *testing.T) {
	mockRepo := &mockCustomerRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Customer, error) {
			return &model.Customer{ID: id, ShopID: testShopID}, nil
		},
	}
	var created *model.Vehicle
	vehicles := &mockVehicleRepository{
		createFunc: func(ctx context.Context, vehicle *model.Vehicle) error {
			created = vehicle
			return nil
		},
	}
	service := newTestService(mockRepo, vehicles, testConfig())

	vehicle := &model.Vehicle{
		VIN:   testVIN,
		Make:  "Honda",
		Model: "Accord",
		Year:  2003,
	}
	if err := service.AddVehicle(context.Background(), testCustomerID, vehicle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected vehicle Create to be called")
	}
	if created.CustomerID != testCustomerID {
		t.Errorf("expected customer ID %q on vehicle, got %q", testCustomerID, created.CustomerID)
	}
}

func TestAddVehicle_InvalidCheckDigit(t *testing.T) {
	mockRepo := &mockCustomerRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Customer, error) {
			return &model.Customer{ID: id, ShopID: testShopID}, nil
		},
	}
	service := newTestService(mockRepo, &mockVehicleRepository{}, testConfig())

	vehicle := &model.Vehicle{
		VIN:   "1HGCM82634A004352", // check digit altered
		Make:  "Honda",
		Model: "Accord",
		Year:  2003,
	}
	err := service.AddVehicle(context.Background(), testCustomerID, vehicle)
	if err == nil {
		t.Fatal("expected validation error for bad check digit, got nil")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error code, got %v", appErr.Code)
	}
}

func TestAddVehicle_DuplicateVIN(t *testing.T) {
	mockRepo := &mockCustomerRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Customer, error) {
			return &model.Customer{ID: id, ShopID: testShopID}, nil
		},
	}
	vehicles := &mockVehicleRepository{
		findByVINFunc: func(ctx context.Context, vin string) (*model.Vehicle, error) {
			return &model.Vehicle{ID: "existing", CustomerID: "someone-else", VIN: vin}, nil
		},
	}
	service := newTestService(mockRepo, vehicles, testConfig())

	vehicle := &model.Vehicle{
		VIN:   testVIN,
		Make:  "Honda",
		Model: "Accord",
		Year:  2003,
	}
	err := service.AddVehicle(context.Background(), testCustomerID, vehicle)
	if err == nil {
		t.Fatal("expected conflict error for duplicate VIN, got nil")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error code, got %v", appErr.Code)
	}
}
