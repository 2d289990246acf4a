package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vetsupport/internal/model"
)

// ProfileRepo handles MongoDB operations for veteran profiles. Profiles
// are keyed by the veteran ID issued at login.
type ProfileRepo interface {
	GetByID(ctx context.Context, veteranID string) (*model.VeteranProfile, error)
	Upsert(ctx context.Context, profile *model.VeteranProfile) error
	UpdateRiskLevel(ctx context.Context, veteranID string, level model.RiskLevel, assessedAt time.Time) error
}

type profileRepo struct {
	collection *mongo.Collection
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *mongo.Database) ProfileRepo {
	return &profileRepo{
		collection: db.Collection("veteran_profiles"),
	}
}

func (r *profileRepo) GetByID(ctx context.Context, veteranID string) (*model.VeteranProfile, error) {
	var profile model.VeteranProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": veteranID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) Upsert(ctx context.Context, profile *model.VeteranProfile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile, opts)
	return err
}

func (r *profileRepo) UpdateRiskLevel(ctx context.Context, veteranID string, level model.RiskLevel, assessedAt time.Time) error {
	update := bson.M{"$set": bson.M{
		"riskLevel":          level,
		"lastAssessmentDate": assessedAt,
		"updatedAt":          time.Now().UTC(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": veteranID}, update)
	return err
}
