package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vetsupport/internal/model"
)

// AssessmentRepo handles MongoDB operations for assessment history.
// History is append-only: completed assessments are never updated or
// deleted.
type AssessmentRepo interface {
	Create(ctx context.Context, assessment *model.Assessment) (string, error)
	GetByVeteranID(ctx context.Context, veteranID string, limit int) ([]*model.Assessment, error)
	GetLatest(ctx context.Context, veteranID string) (*model.Assessment, error)
}

type assessmentRepo struct {
	collection *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		collection: db.Collection("assessments"),
	}
}

func (r *assessmentRepo) Create(ctx context.Context, assessment *model.Assessment) (string, error) {
	if assessment.CompletedAt.IsZero() {
		assessment.CompletedAt = time.Now().UTC()
	}
	// String _id, same keying convention as veteran profiles
	if assessment.ID == "" {
		assessment.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, assessment); err != nil {
		return "", err
	}
	return assessment.ID, nil
}

func (r *assessmentRepo) GetByVeteranID(ctx context.Context, veteranID string, limit int) ([]*model.Assessment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "completedAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"veteranId": veteranID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assessments []*model.Assessment
	if err := cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *assessmentRepo) GetLatest(ctx context.Context, veteranID string) (*model.Assessment, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "completedAt", Value: -1}})

	var assessment model.Assessment
	err := r.collection.FindOne(ctx, bson.M{"veteranId": veteranID}, opts).Decode(&assessment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}
