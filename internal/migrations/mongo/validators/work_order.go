package validators

import "go.mongodb.org/mongo-driver/bson"

var WorkOrderValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"shop_id",
			"customer_id",
			"service_label",
			"start_time",
			"end_time",
			"status",
			"priority",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"shop_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"customer_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"vehicle_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"bay_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"technician_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"service_label": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"required_specialties": bson.M{
				"bsonType": "array",
				"maxItems": 10,
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 2,
					"maxLength": 50,
				},
			},

			"minimum_skill_level": bson.M{
				"bsonType": "string",
				"enum": []string{
					"beginner",
					"intermediate",
					"expert",
				},
			},

			"start_time": bson.M{
				"bsonType": "date",
			},

			"end_time": bson.M{
				"bsonType": "date",
			},

			"estimated_hours": bson.M{
				"bsonType": []string{"double", "int"},
				"minimum":  0,
				"maximum":  24,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"scheduled",
					"in_progress",
					"completed",
					"cancelled",
				},
			},

			"priority": bson.M{
				"bsonType": "string",
				"enum": []string{
					"low",
					"normal",
					"high",
				},
			},

			"is_emergency": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
