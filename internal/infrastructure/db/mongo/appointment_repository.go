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

const appointmentsCollection = "appointments"

type MongoAppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *MongoAppointmentRepository {
	return &MongoAppointmentRepository{coll: db.Collection(appointmentsCollection)}
}

type mongoAppointment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	PatientID      string             `bson:"patient_id"`
	LabID          string             `bson:"lab_id"`
	AnalysisTypeID string             `bson:"analysis_type_id"`
	ScheduledAt    time.Time          `bson:"scheduled_at"`
	Status         string             `bson:"status"`
	Notes          string             `bson:"notes,omitempty"`
	CreatedAt      int64              `bson:"created_at"`
}

func toMongoAppointment(a *domain.Appointment) mongoAppointment {
	return mongoAppointment{
		PatientID:      a.PatientID,
		LabID:          a.LabID,
		AnalysisTypeID: a.AnalysisTypeID,
		ScheduledAt:    a.ScheduledAt.UTC(),
		Status:         string(a.Status),
		Notes:          a.Notes,
		CreatedAt:      a.CreatedAt.Unix(),
	}
}

func (ma mongoAppointment) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:             ma.ID.Hex(),
		PatientID:      ma.PatientID,
		LabID:          ma.LabID,
		AnalysisTypeID: ma.AnalysisTypeID,
		ScheduledAt:    ma.ScheduledAt,
		Status:         domain.AppointmentStatus(ma.Status),
		Notes:          ma.Notes,
		CreatedAt:      unixToTime(ma.CreatedAt),
	}
}

func (r *MongoAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	res, err := r.coll.InsertOne(ctx, toMongoAppointment(a))
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	created := *a
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoAppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}

	var ma mongoAppointment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *MongoAppointmentRepository) FindAll(ctx context.Context) ([]*domain.Appointment, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *MongoAppointmentRepository) FindByPatient(ctx context.Context, patientID string) ([]*domain.Appointment, error) {
	return r.find(ctx, bson.M{"patient_id": patientID}, nil)
}

func (r *MongoAppointmentRepository) FindByLab(ctx context.Context, labID string) ([]*domain.Appointment, error) {
	return r.find(ctx, bson.M{"lab_id": labID}, nil)
}

func (r *MongoAppointmentRepository) FindUpcomingByLab(ctx context.Context, labID string, after time.Time) ([]*domain.Appointment, error) {
	filter := bson.M{
		"lab_id":       labID,
		"scheduled_at": bson.M{"$gt": after.UTC()},
		"status":       bson.M{"$ne": string(domain.AppointmentCancelled)},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}}))
}

func (r *MongoAppointmentRepository) FindByStatus(ctx context.Context, status domain.AppointmentStatus) ([]*domain.Appointment, error) {
	return r.find(ctx, bson.M{"status": string(status)}, nil)
}

func (r *MongoAppointmentRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Appointment, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.coll.Find(ctx, filter, opts)
	} else {
		cur, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cur.Close(ctx)

	var appointments []*domain.Appointment
	for cur.Next(ctx) {
		var ma mongoAppointment
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode appointment: %w", err)
		}
		appointments = append(appointments, ma.toDomain())
	}
	return appointments, cur.Err()
}

func (r *MongoAppointmentRepository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoAppointment(a))
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrAppointmentNotFound
	}
	return a, nil
}

func (r *MongoAppointmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAppointmentNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}
