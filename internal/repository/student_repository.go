package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RubachokBoss/student-registry/internal/database"
	"github.com/RubachokBoss/student-registry/internal/models"
	"github.com/rs/zerolog"
)

// StudentRepository is the persistence adapter over the students
// collection. Absent records are reported as (nil, nil); the service
// layer decides what absence means for each operation.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetAll(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByEmail(ctx context.Context, email, excludeID string) (*models.Student, error)
	Update(ctx context.Context, id string, student *models.Student) (*models.Student, error)
	Delete(ctx context.Context, id string) (*models.Student, error)
}

type studentRepository struct {
	collection *mongo.Collection
	logger     zerolog.Logger
}

func NewStudentRepository(db *mongo.Database, logger zerolog.Logger) StudentRepository {
	return &studentRepository{
		collection: db.Collection(database.StudentsCollection),
		logger:     logger,
	}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	student.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, student)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrEmailTaken
	}

	return err
}

func (r *studentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	students := []models.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}

	return students, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid student id %q: %w", id, err)
	}

	student := &models.Student{}
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(student)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return student, nil
}

// GetByEmail looks up a student by normalized email. A non-empty
// excludeID removes the record being updated from consideration, so an
// unchanged email does not collide with itself.
func (r *studentRepository) GetByEmail(ctx context.Context, email, excludeID string) (*models.Student, error) {
	filter := bson.M{"email": email}
	if excludeID != "" {
		oid, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, fmt.Errorf("invalid student id %q: %w", excludeID, err)
		}
		filter["_id"] = bson.M{"$ne": oid}
	}

	student := &models.Student{}
	err := r.collection.FindOne(ctx, filter).Decode(student)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return student, nil
}

func (r *studentRepository) Update(ctx context.Context, id string, student *models.Student) (*models.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid student id %q: %w", id, err)
	}

	update := bson.M{"$set": bson.M{
		"name":      student.Name,
		"address":   student.Address,
		"city":      student.City,
		"state":     student.State,
		"email":     student.Email,
		"phone":     student.Phone,
		"updatedAt": student.UpdatedAt,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	updated := &models.Student{}
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, models.ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *studentRepository) Delete(ctx context.Context, id string) (*models.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid student id %q: %w", id, err)
	}

	deleted := &models.Student{}
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return deleted, nil
}
