package profile

import (
	"context"
	"errors"

	"github.com/brandhub/core/internal/database"
	"github.com/brandhub/core/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository stores profiles as documents keyed by their "id" field.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(database.ProfilesCollection)}
}

func (r *mongoRepository) Upsert(ctx context.Context, p *models.BusinessProfile) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": p.ID}, p, options.Replace().SetUpsert(true))
	return err
}

func (r *mongoRepository) FindByID(ctx context.Context, id string) (*models.BusinessProfile, error) {
	var p models.BusinessProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]models.BusinessProfile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	items := []models.BusinessProfile{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
