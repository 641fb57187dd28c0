package validators

import "go.mongodb.org/mongo-driver/bson"

var TechnicianValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"shop_id",
			"name",
			"phone",
			"specialties",
			"skill_level",
			"max_daily_hours",
			"status",
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

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"minLength": 8,
				"maxLength": 16,
			},

			"specialties": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"maxItems": 20,
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 2,
					"maxLength": 50,
				},
			},

			"skill_level": bson.M{
				"bsonType": "string",
				"enum": []string{
					"beginner",
					"intermediate",
					"expert",
				},
			},

			"max_daily_hours": bson.M{
				"bsonType": []string{"double", "int"},
				"minimum":  0,
				"maximum":  24,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"active",
					"inactive",
				},
			},

			"time_zone": bson.M{
				"bsonType": "string",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
