package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

const resultsCollection = "results"

type MongoResultRepository struct {
	coll *mongo.Collection
}

func NewResultRepository(db *mongo.Database) *MongoResultRepository {
	return &MongoResultRepository{coll: db.Collection(resultsCollection)}
}

type mongoResult struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	AppointmentID  string             `bson:"appointment_id"`
	TechnicianID   string             `bson:"technician_id"`
	PDFPath        string             `bson:"pdf_path,omitempty"`
	Notes          string             `bson:"notes,omitempty"`
	ResultDate     time.Time          `bson:"result_date"`
	Status         string             `bson:"status"`
	MeasuredValues string             `bson:"measured_values,omitempty"`
	CreatedAt      int64              `bson:"created_at"`
}

func toMongoResult(res *domain.Result) mongoResult {
	return mongoResult{
		AppointmentID:  res.AppointmentID,
		TechnicianID:   res.TechnicianID,
		PDFPath:        res.PDFPath,
		Notes:          res.Notes,
		ResultDate:     res.ResultDate.UTC(),
		Status:         string(res.Status),
		MeasuredValues: res.MeasuredValues,
		CreatedAt:      res.CreatedAt.Unix(),
	}
}

func (mr mongoResult) toDomain() *domain.Result {
	return &domain.Result{
		ID:             mr.ID.Hex(),
		AppointmentID:  mr.AppointmentID,
		TechnicianID:   mr.TechnicianID,
		PDFPath:        mr.PDFPath,
		Notes:          mr.Notes,
		ResultDate:     mr.ResultDate,
		Status:         domain.ResultStatus(mr.Status),
		MeasuredValues: mr.MeasuredValues,
		CreatedAt:      unixToTime(mr.CreatedAt),
	}
}

func (r *MongoResultRepository) Create(ctx context.Context, res *domain.Result) (*domain.Result, error) {
	ins, err := r.coll.InsertOne(ctx, toMongoResult(res))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrResultExists
		}
		return nil, fmt.Errorf("insert result: %w", err)
	}

	created := *res
	created.ID = ins.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoResultRepository) FindByID(ctx context.Context, id string) (*domain.Result, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrResultNotFound
	}

	var mr mongoResult
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("find result: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoResultRepository) FindByAppointment(ctx context.Context, appointmentID string) (*domain.Result, error) {
	var mr mongoResult
	if err := r.coll.FindOne(ctx, bson.M{"appointment_id": appointmentID}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("find result by appointment: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoResultRepository) FindAll(ctx context.Context) ([]*domain.Result, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoResultRepository) FindByTechnician(ctx context.Context, technicianID string) ([]*domain.Result, error) {
	return r.find(ctx, bson.M{"technician_id": technicianID})
}

func (r *MongoResultRepository) FindByStatus(ctx context.Context, status domain.ResultStatus) ([]*domain.Result, error) {
	return r.find(ctx, bson.M{"status": string(status)})
}

func (r *MongoResultRepository) find(ctx context.Context, filter bson.M) ([]*domain.Result, error) {
	opts := options.Find().SetSort(bson.D{{Key: "result_date", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find results: %w", err)
	}
	defer cur.Close(ctx)

	var results []*domain.Result
	for cur.Next(ctx) {
		var mr mongoResult
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
		results = append(results, mr.toDomain())
	}
	return results, cur.Err()
}

func (r *MongoResultRepository) Update(ctx context.Context, res *domain.Result) (*domain.Result, error) {
	oid, err := primitive.ObjectIDFromHex(res.ID)
	if err != nil {
		return nil, domain.ErrResultNotFound
	}

	replaced, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoResult(res))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrResultExists
		}
		return nil, fmt.Errorf("update result: %w", err)
	}
	if replaced.MatchedCount == 0 {
		return nil, domain.ErrResultNotFound
	}
	return res, nil
}

func (r *MongoResultRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrResultNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResultNotFound
	}
	return nil
}
