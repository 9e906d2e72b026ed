package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

const analysisTypesCollection = "analysis_types"

type MongoAnalysisTypeRepository struct {
	coll *mongo.Collection
}

func NewAnalysisTypeRepository(db *mongo.Database) *MongoAnalysisTypeRepository {
	return &MongoAnalysisTypeRepository{coll: db.Collection(analysisTypesCollection)}
}

type mongoAnalysisType struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description"`
	Price          float64            `bson:"price"`
	TurnaroundDays int                `bson:"turnaround_days"`
	Active         bool               `bson:"active"`
	CreatedAt      int64              `bson:"created_at"`
}

func toMongoAnalysisType(t *domain.AnalysisType) mongoAnalysisType {
	return mongoAnalysisType{
		Name:           t.Name,
		Description:    t.Description,
		Price:          t.Price,
		TurnaroundDays: t.TurnaroundDays,
		Active:         t.Active,
		CreatedAt:      t.CreatedAt.Unix(),
	}
}

func (mt mongoAnalysisType) toDomain() *domain.AnalysisType {
	return &domain.AnalysisType{
		ID:             mt.ID.Hex(),
		Name:           mt.Name,
		Description:    mt.Description,
		Price:          mt.Price,
		TurnaroundDays: mt.TurnaroundDays,
		Active:         mt.Active,
		CreatedAt:      unixToTime(mt.CreatedAt),
	}
}

func (r *MongoAnalysisTypeRepository) Create(ctx context.Context, t *domain.AnalysisType) (*domain.AnalysisType, error) {
	res, err := r.coll.InsertOne(ctx, toMongoAnalysisType(t))
	if err != nil {
		return nil, fmt.Errorf("insert analysis type: %w", err)
	}

	created := *t
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoAnalysisTypeRepository) FindByID(ctx context.Context, id string) (*domain.AnalysisType, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAnalysisTypeNotFound
	}

	var mt mongoAnalysisType
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAnalysisTypeNotFound
		}
		return nil, fmt.Errorf("find analysis type: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoAnalysisTypeRepository) FindAll(ctx context.Context) ([]*domain.AnalysisType, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoAnalysisTypeRepository) FindActive(ctx context.Context) ([]*domain.AnalysisType, error) {
	return r.find(ctx, bson.M{"active": true})
}

func (r *MongoAnalysisTypeRepository) SearchByName(ctx context.Context, name string) ([]*domain.AnalysisType, error) {
	return r.find(ctx, bson.M{"name": primitive.Regex{Pattern: regexEscape(name), Options: "i"}})
}

func (r *MongoAnalysisTypeRepository) find(ctx context.Context, filter bson.M) ([]*domain.AnalysisType, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find analysis types: %w", err)
	}
	defer cur.Close(ctx)

	var types []*domain.AnalysisType
	for cur.Next(ctx) {
		var mt mongoAnalysisType
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode analysis type: %w", err)
		}
		types = append(types, mt.toDomain())
	}
	return types, cur.Err()
}

func (r *MongoAnalysisTypeRepository) Update(ctx context.Context, t *domain.AnalysisType) (*domain.AnalysisType, error) {
	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return nil, domain.ErrAnalysisTypeNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoAnalysisType(t))
	if err != nil {
		return nil, fmt.Errorf("update analysis type: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrAnalysisTypeNotFound
	}
	return t, nil
}
