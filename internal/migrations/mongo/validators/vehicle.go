package validators

import "go.mongodb.org/mongo-driver/bson"

var VehicleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"customer_id",
			"vin",
			"make",
			"model",
			"year",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"customer_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"vin": bson.M{
				"bsonType":  "string",
				"minLength": 17,
				"maxLength": 17,
			},

			"make": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"model": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"year": bson.M{
				"bsonType": "int",
				"minimum":  1900,
				"maximum":  2100,
			},

			"plate": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 16,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
