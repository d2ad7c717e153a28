package audit

import (
	"clinigate-service/internal/app/contracts"
	"clinigate-service/internal/app/models"
	"clinigate-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const MongoCollectionAccessDecisions = "access_decisions"

type AuditMongoRepository struct {
	Collection *mongo.Collection
}

func NewAuditMongoRepository(db *mongo.Client, dbName string) contracts.AuditRepository {
	return &AuditMongoRepository{
		Collection: db.Database(dbName).Collection(MongoCollectionAccessDecisions),
	}
}

func (repo *AuditMongoRepository) InsertDecisionRecord(ctx context.Context, record *models.AccessDecisionRecord) error {
	_, err := repo.Collection.InsertOne(ctx, record)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *AuditMongoRepository) CountDecisionsBySubject(ctx context.Context, subjectID string) (int64, error) {
	count, err := repo.Collection.CountDocuments(ctx, bson.M{"subjectId": subjectID})
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}
