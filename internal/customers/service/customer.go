package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	customererrors "shoptrack/internal/customers/errors"
	"shoptrack/internal/customers/repository"
	"shoptrack/internal/customers/validator"
	"shoptrack/pkg/config"
	apperrors "shoptrack/pkg/errors"
	"shoptrack/pkg/model"
	"shoptrack/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type CustomerService interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, int64, error)
	GetByPhone(ctx context.Context, phone string) ([]*model.Customer, error)
	Update(ctx context.Context, id string, updates *model.CustomerUpdate) error
	Delete(ctx context.Context, id string) error

	AddVehicle(ctx context.Context, customerID string, vehicle *model.Vehicle) error
	GetVehicles(ctx context.Context, customerID string) ([]*model.Vehicle, error)
}

type customerService struct {
	repo      repository.CustomerRepository
	vehicles  repository.VehicleRepository
	validator *validator.CustomerValidator
	cfg       *config.Config
}

func NewCustomerService(
	repo repository.CustomerRepository,
	vehicles repository.VehicleRepository,
	validator *validator.CustomerValidator,
	cfg *config.Config,
) CustomerService {
	return &customerService{
		repo:      repo,
		vehicles:  vehicles,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *customerService) Create(ctx context.Context, customer *model.Customer) error {
	s.sanitize(customer)

	if err := s.validator.Validate(customer); err != nil {
		s.cfg.Log.Warn("Customer validation failed",
			"name", customer.Name,
			"phone", customer.Phone,
			"error", err,
		)
		return apperrors.Validation("Customer validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByPhone(sessCtx, customer.Phone)
		if err != nil {
			return fmt.Errorf("failed to check for duplicates: %w", err)
		}

		for _, e := range existing {
			if e.ShopID == customer.ShopID {
				return apperrors.Conflict(fmt.Sprintf(
					"Customer with phone %s already exists in this shop (id: %s)",
					customer.Phone, e.ID,
				))
			}
		}

		if err := s.repo.Create(sessCtx, customer); err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}

		return nil
	})

	if err != nil {
		s.cfg.Log.Error("Failed to create customer",
			"name", customer.Name,
			"phone", customer.Phone,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Customer created successfully",
		"id", customer.ID,
		"name", customer.Name,
		"shop_id", customer.ShopID,
	)

	return nil
}

func (s *customerService) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Customer ID cannot be empty")
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, customererrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Customer", id)
		}
		if errors.Is(err, customererrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid customer ID format")
		}
		s.cfg.Log.Error("Failed to get customer by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve customer", err)
	}

	return customer, nil
}

func (s *customerService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Customer, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var customers []*model.Customer
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx)
		if err != nil {
			s.cfg.Log.Error("Failed to count customers", "error", err)
			errCount = apperrors.Internal("Failed to count customers", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		customers, err = s.repo.FindAll(ctx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list customers",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve customers", err)
		}
	}()
	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return customers, count, nil
}

func (s *customerService) GetByPhone(ctx context.Context, phone string) ([]*model.Customer, error) {
	if phone == "" {
		return nil, apperrors.InvalidInput("Phone number cannot be empty")
	}

	phone = sanitizer.NormalizePhone(phone)
	if phone == "" {
		return nil, apperrors.InvalidInput("Phone number could not be normalized to E.164")
	}

	customers, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		s.cfg.Log.Error("Failed to get customers by phone", "phone", phone, "error", err)
		return nil, apperrors.Internal("Failed to retrieve customers by phone", err)
	}

	return customers, nil
}

func (s *customerService) Update(ctx context.Context, id string, updates *model.CustomerUpdate) error {
	if id == "" {
		return apperrors.InvalidInput("Customer ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, customererrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Customer", id)
		}
		if errors.Is(err, customererrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid customer ID format")
		}
		return apperrors.Internal("Failed to check customer existence", err)
	}

	s.sanitizeUpdate(updates)
	merged := s.mergeUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Customer validation failed", "id", id, "error", err)
		return apperrors.Validation("Customer validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update customer", "id", id, "error", err)
		return apperrors.Internal("Failed to update customer", err)
	}
	s.cfg.Log.Info("Customer updated successfully", "id", id, "name", merged.Name)

	return nil
}

func (s *customerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Customer ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, customererrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Customer", id)
		}
		if errors.Is(err, customererrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid customer ID format")
		}
		s.cfg.Log.Error("Failed to delete customer", "id", id, "error", err)
		return apperrors.Internal("Failed to delete customer", err)
	}

	s.cfg.Log.Info("Customer deleted successfully", "id", id)

	return nil
}

func (s *customerService) AddVehicle(ctx context.Context, customerID string, vehicle *model.Vehicle) error {
	if customerID == "" {
		return apperrors.InvalidInput("Customer ID cannot be empty")
	}

	// The customer must exist before a vehicle can be parked under them.
	if _, err := s.GetByID(ctx, customerID); err != nil {
		return err
	}

	vehicle.CustomerID = customerID
	s.sanitizeVehicle(vehicle)

	if err := s.validator.ValidateVehicle(vehicle); err != nil {
		s.cfg.Log.Warn("Vehicle validation failed",
			"customer_id", customerID,
			"vin", vehicle.VIN,
			"error", err,
		)
		return apperrors.Validation("Vehicle validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	existing, err := s.vehicles.FindByVIN(ctx, vehicle.VIN)
	if err != nil && !errors.Is(err, customererrors.ErrVehicleNotFound) {
		return apperrors.Internal("Failed to check for existing vehicle", err)
	}
	if existing != nil {
		return apperrors.Conflict(fmt.Sprintf(
			"Vehicle with VIN %s is already registered (customer: %s)",
			vehicle.VIN, existing.CustomerID,
		))
	}

	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		s.cfg.Log.Error("Failed to create vehicle",
			"customer_id", customerID,
			"vin", vehicle.VIN,
			"error", err,
		)
		return apperrors.Internal("Failed to create vehicle", err)
	}

	s.cfg.Log.Info("Vehicle added successfully",
		"id", vehicle.ID,
		"customer_id", customerID,
		"vin", vehicle.VIN,
	)

	return nil
}

func (s *customerService) GetVehicles(ctx context.Context, customerID string) ([]*model.Vehicle, error) {
	if customerID == "" {
		return nil, apperrors.InvalidInput("Customer ID cannot be empty")
	}

	if _, err := s.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	vehicles, err := s.vehicles.FindByCustomer(ctx, customerID)
	if err != nil {
		s.cfg.Log.Error("Failed to get vehicles", "customer_id", customerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve vehicles", err)
	}

	return vehicles, nil
}

func (s *customerService) sanitize(customer *model.Customer) {
	customer.Name = sanitizer.NormalizeName(customer.Name)
	customer.Phone = sanitizer.NormalizePhone(customer.Phone)
	customer.Email = sanitizer.TrimAndNormalize(customer.Email)
	customer.Address = sanitizer.NormalizeAddress(customer.Address)
	customer.City = sanitizer.NormalizeCity(customer.City)
}

func (s *customerService) sanitizeUpdate(updates *model.CustomerUpdate) {
	if updates.Name != "" {
		updates.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Phone != "" {
		updates.Phone = sanitizer.NormalizePhone(updates.Phone)
	}
	if updates.Email != "" {
		updates.Email = sanitizer.TrimAndNormalize(updates.Email)
	}
	if updates.Address != "" {
		updates.Address = sanitizer.NormalizeAddress(updates.Address)
	}
	if updates.City != "" {
		updates.City = sanitizer.NormalizeCity(updates.City)
	}
}

func (s *customerService) sanitizeVehicle(vehicle *model.Vehicle) {
	vehicle.VIN = sanitizer.NormalizeVIN(vehicle.VIN)
	vehicle.Make = sanitizer.NormalizeName(vehicle.Make)
	vehicle.Model = sanitizer.TrimAndNormalize(vehicle.Model)
	vehicle.Plate = sanitizer.NormalizePlate(vehicle.Plate)
}

func (s *customerService) mergeUpdates(existing *model.Customer, updates *model.CustomerUpdate) *model.Customer {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Phone != "" {
		merged.Phone = updates.Phone
	}
	if updates.Email != "" {
		merged.Email = updates.Email
	}
	if updates.Address != "" {
		merged.Address = updates.Address
	}
	if updates.City != "" {
		merged.City = updates.City
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt

	return &merged
}
