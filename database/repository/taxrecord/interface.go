package taxrecordRepo

import (
	"context"

	"taxline/config"
	"taxline/database"
	"taxline/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TaxRecordRepository is the keyed-record lookup behind identity
// verification and personal tax queries.
type TaxRecordRepository interface {
	// GetByCustomerID returns the record for the given customer id,
	// or (nil, nil) when no record exists.
	GetByCustomerID(ctx context.Context, customerID string) (*models.TaxRecord, error)
	ListAll(ctx context.Context) ([]models.TaxRecord, error)
	// ReplaceAll wipes the collection and inserts the given records,
	// returning the number inserted. Used by the bulk CSV import.
	ReplaceAll(ctx context.Context, records []models.TaxRecord) (int, error)
}

type mongoTaxRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoTaxRecordRepo returns a TaxRecordRepository backed by MongoDB.
func NewMongoTaxRecordRepo() TaxRecordRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoTaxRecordRepo{
		coll: db.Collection(config.AppConfig.TaxRecordsColl),
	}
}
