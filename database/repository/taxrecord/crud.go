package taxrecordRepo

import (
	"context"
	"errors"
	"time"

	"taxline/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoTaxRecordRepo) GetByCustomerID(ctx context.Context, customerID string) (*models.TaxRecord, error) {
	var record models.TaxRecord
	err := r.coll.FindOne(ctx, bson.M{"customerId": customerID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *mongoTaxRecordRepo) ListAll(ctx context.Context) ([]models.TaxRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.TaxRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *mongoTaxRecordRepo) ReplaceAll(ctx context.Context, records []models.TaxRecord) (int, error) {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(records))
	now := time.Now()
	for _, rec := range records {
		rec.UpdatedAt = now
		docs = append(docs, rec)
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}
