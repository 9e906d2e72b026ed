package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/labworks/clinical-labs-api/internal/core/domain"
)

const assignmentsCollection = "lab_analysis_assignments"

type MongoAssignmentRepository struct {
	coll *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *MongoAssignmentRepository {
	return &MongoAssignmentRepository{coll: db.Collection(assignmentsCollection)}
}

type mongoAssignment struct {
	LabID          string `bson:"lab_id"`
	AnalysisTypeID string `bson:"analysis_type_id"`
	Available      bool   `bson:"available"`
	AssignedAt     int64  `bson:"assigned_at"`
}

func (r *MongoAssignmentRepository) Create(ctx context.Context, a *domain.Assignment) error {
	doc := mongoAssignment{
		LabID:          a.LabID,
		AnalysisTypeID: a.AnalysisTypeID,
		Available:      a.Available,
		AssignedAt:     a.AssignedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAssignmentExists
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (r *MongoAssignmentRepository) FindByLab(ctx context.Context, labID string) ([]*domain.Assignment, error) {
	cur, err := r.coll.Find(ctx, bson.M{"lab_id": labID})
	if err != nil {
		return nil, fmt.Errorf("find assignments: %w", err)
	}
	defer cur.Close(ctx)

	var assignments []*domain.Assignment
	for cur.Next(ctx) {
		var ma mongoAssignment
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode assignment: %w", err)
		}
		assignments = append(assignments, &domain.Assignment{
			LabID:          ma.LabID,
			AnalysisTypeID: ma.AnalysisTypeID,
			Available:      ma.Available,
			AssignedAt:     unixToTime(ma.AssignedAt),
		})
	}
	return assignments, cur.Err()
}
