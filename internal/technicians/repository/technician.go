package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	technicianerrors "shoptrack/internal/technicians/errors"
	"shoptrack/pkg/config"
	mongotx "shoptrack/pkg/db/mongo"
	"shoptrack/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Technicians"
)

type mongoTechnicianRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type TechnicianRepository interface {
	Create(ctx context.Context, tech *model.Technician) error
	FindByID(ctx context.Context, id string) (*model.Technician, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Technician, error)
	Update(ctx context.Context, id string, tech *model.Technician) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error

	FindByShop(ctx context.Context, shopID string, limit int, offset int64) ([]*model.Technician, error)
	CountByShop(ctx context.Context, shopID string) (int64, error)
	Search(ctx context.Context, shopID string, specialties []string, limit int, offset int64) ([]*model.Technician, error)
	CountBySearch(ctx context.Context, shopID string, specialties []string) (int64, error)
	Count(ctx context.Context) (int64, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoTechnicianRepository(cfg *config.Config) TechnicianRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoTechnicianRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

// withTimeout wraps the context with a timeout unless we are already inside
// a transaction. A SessionContext cannot be wrapped without breaking
// transaction semantics, so it is returned unchanged with a no-op cancel.
func (r *mongoTechnicianRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoTechnicianRepository) Create(ctx context.Context, tech *model.Technician) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	tech.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, tech)
	if err != nil {
		return fmt.Errorf("failed to create technician: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		tech.ID = oid.Hex()
	}

	return nil
}

func (r *mongoTechnicianRepository) FindByID(ctx context.Context, id string) (*model.Technician, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", technicianerrors.ErrInvalidID, id)
	}
	filter := bson.M{"_id": objectID}

	var tech model.Technician
	err = r.collection.FindOne(ctx, filter).Decode(&tech)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", technicianerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find technician: %w", err)
	}
	return &tech, nil
}

func (r *mongoTechnicianRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Technician, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query technicians: %w", err)
	}
	defer cursor.Close(ctx)

	var technicians []*model.Technician
	if err = cursor.All(ctx, &technicians); err != nil {
		return nil, fmt.Errorf("failed to decode technicians: %w", err)
	}

	return technicians, nil
}

func (r *mongoTechnicianRepository) Update(ctx context.Context, id string, tech *model.Technician) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", technicianerrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"name":            tech.Name,
			"phone":           tech.Phone,
			"specialties":     tech.Specialties,
			"skill_level":     tech.SkillLevel,
			"max_daily_hours": tech.MaxDailyHours,
			"status":          tech.Status,
			"time_zone":       tech.TimeZone,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update technician: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: %s", technicianerrors.ErrNotFound, id)
	}

	return result, nil
}

func (r *mongoTechnicianRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", technicianerrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete technician: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", technicianerrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoTechnicianRepository) FindByShop(ctx context.Context, shopID string, limit int, offset int64) ([]*model.Technician, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"shop_id": shopID}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find technicians for shop [%s]: %w", shopID, err)
	}
	defer cursor.Close(ctx)

	var technicians []*model.Technician
	if err := cursor.All(ctx, &technicians); err != nil {
		return nil, fmt.Errorf("failed to decode technicians: %w", err)
	}

	return technicians, nil
}

func (r *mongoTechnicianRepository) CountByShop(ctx context.Context, shopID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"shop_id": shopID})
	if err != nil {
		return 0, fmt.Errorf("failed to count technicians for shop [%s]: %w", shopID, err)
	}
	return count, nil
}

func (r *mongoTechnicianRepository) buildSearchFilter(shopID string, specialties []string) bson.M {
	filter := bson.M{"shop_id": shopID}
	if len(specialties) > 0 {
		// $all: the technician must cover every requested specialty.
		filter["specialties"] = bson.M{"$all": specialties}
	}
	return filter
}

func (r *mongoTechnicianRepository) Search(ctx context.Context, shopID string, specialties []string, limit int, offset int64) ([]*model.Technician, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "skill_level", Value: -1}, {Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, r.buildSearchFilter(shopID, specialties), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search technicians: %w", err)
	}
	defer cursor.Close(ctx)

	var technicians []*model.Technician
	if err := cursor.All(ctx, &technicians); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	return technicians, nil
}

func (r *mongoTechnicianRepository) CountBySearch(ctx context.Context, shopID string, specialties []string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, r.buildSearchFilter(shopID, specialties))
	if err != nil {
		return 0, fmt.Errorf("failed to count technicians by search: %w", err)
	}
	return count, nil
}

func (r *mongoTechnicianRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count technicians: %w", err)
	}
	return count, nil
}

func (r *mongoTechnicianRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
