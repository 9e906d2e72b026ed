package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

const labsCollection = "laboratories"

type MongoLaboratoryRepository struct {
	coll *mongo.Collection
}

func NewLaboratoryRepository(db *mongo.Database) *MongoLaboratoryRepository {
	return &MongoLaboratoryRepository{coll: db.Collection(labsCollection)}
}

type mongoLaboratory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Address   string             `bson:"address"`
	Phone     string             `bson:"phone"`
	Email     string             `bson:"email"`
	Specialty string             `bson:"specialty"`
	Active    bool               `bson:"active"`
	CreatedAt int64              `bson:"created_at"`
}

func toMongoLaboratory(lab *domain.Laboratory) mongoLaboratory {
	return mongoLaboratory{
		Name:      lab.Name,
		Address:   lab.Address,
		Phone:     lab.Phone,
		Email:     lab.Email,
		Specialty: lab.Specialty,
		Active:    lab.Active,
		CreatedAt: lab.CreatedAt.Unix(),
	}
}

func (ml mongoLaboratory) toDomain() *domain.Laboratory {
	return &domain.Laboratory{
		ID:        ml.ID.Hex(),
		Name:      ml.Name,
		Address:   ml.Address,
		Phone:     ml.Phone,
		Email:     ml.Email,
		Specialty: ml.Specialty,
		Active:    ml.Active,
		CreatedAt: unixToTime(ml.CreatedAt),
	}
}

func (r *MongoLaboratoryRepository) Create(ctx context.Context, lab *domain.Laboratory) (*domain.Laboratory, error) {
	res, err := r.coll.InsertOne(ctx, toMongoLaboratory(lab))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert laboratory: %w", err)
	}

	created := *lab
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoLaboratoryRepository) FindByID(ctx context.Context, id string) (*domain.Laboratory, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLabNotFound
	}

	var ml mongoLaboratory
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrLabNotFound
		}
		return nil, fmt.Errorf("find laboratory: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *MongoLaboratoryRepository) FindByEmail(ctx context.Context, email string) (*domain.Laboratory, error) {
	var ml mongoLaboratory
	opts := options.FindOne().SetCollation(caseInsensitive)
	if err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&ml); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrLabNotFound
		}
		return nil, fmt.Errorf("find laboratory by email: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *MongoLaboratoryRepository) FindAll(ctx context.Context) ([]*domain.Laboratory, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoLaboratoryRepository) FindActive(ctx context.Context) ([]*domain.Laboratory, error) {
	return r.find(ctx, bson.M{"active": true})
}

func (r *MongoLaboratoryRepository) FindBySpecialty(ctx context.Context, specialty string) ([]*domain.Laboratory, error) {
	return r.find(ctx, bson.M{"specialty": primitive.Regex{Pattern: "^" + regexEscape(specialty) + "$", Options: "i"}})
}

func (r *MongoLaboratoryRepository) SearchByName(ctx context.Context, name string) ([]*domain.Laboratory, error) {
	return r.find(ctx, bson.M{"name": primitive.Regex{Pattern: regexEscape(name), Options: "i"}})
}

func (r *MongoLaboratoryRepository) find(ctx context.Context, filter bson.M) ([]*domain.Laboratory, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find laboratories: %w", err)
	}
	defer cur.Close(ctx)

	var labs []*domain.Laboratory
	for cur.Next(ctx) {
		var ml mongoLaboratory
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode laboratory: %w", err)
		}
		labs = append(labs, ml.toDomain())
	}
	return labs, cur.Err()
}

func (r *MongoLaboratoryRepository) Update(ctx context.Context, lab *domain.Laboratory) (*domain.Laboratory, error) {
	oid, err := primitive.ObjectIDFromHex(lab.ID)
	if err != nil {
		return nil, domain.ErrLabNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoLaboratory(lab))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update laboratory: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrLabNotFound
	}
	return lab, nil
}
