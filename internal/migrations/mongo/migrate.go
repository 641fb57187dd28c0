package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shoptrack/internal/migrations/mongo/validators"
)

const (
	DB_NAME = "shoptrack"
)

var (
	WorkOrdersIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "shop_id", Value: 1},
			{Key: "technician_id", Value: 1},
			{Key: "start_time", Value: 1},
			{Key: "end_time", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "shop_id", Value: 1},
			{Key: "bay_id", Value: 1},
			{Key: "start_time", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "customer_id", Value: 1},
			{Key: "start_time", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "start_time", Value: 1},
		}},
	}

	TechniciansIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "shop_id", Value: 1},
			{Key: "phone", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "shop_id", Value: 1},
			{Key: "specialties", Value: 1},
			{Key: "skill_level", Value: -1},
		}},
	}

	CustomersIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "phone", Value: 1}}},
		{Keys: bson.D{
			{Key: "shop_id", Value: 1},
			{Key: "phone", Value: 1},
		}},
	}

	VehiclesIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "vin", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{
			{Key: "customer_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
	}

	// Mongo's TTL monitor reaps expired locks so an abandoned booking
	// attempt cannot hold a slot forever.
	SlotLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client) error {
	db := client.Database(DB_NAME)
	fmt.Printf("🚀 Running Shoptrack Mongo migrations on database: %s\n", DB_NAME)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Work_orders": {
			Indexes:   WorkOrdersIndexes,
			Validator: validators.WorkOrderValidator,
		},
		"Technicians": {
			Indexes:   TechniciansIndexes,
			Validator: validators.TechnicianValidator,
		},
		"Customers": {
			Indexes:   CustomersIndexes,
			Validator: validators.CustomerValidator,
		},
		"Vehicles": {
			Indexes:   VehiclesIndexes,
			Validator: validators.VehicleValidator,
		},
		"Slot_locks": {
			Indexes:   SlotLocksIndexes,
			Validator: validators.SlotLockValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("ℹ️ Collection %s already exists — updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}
