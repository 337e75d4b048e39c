package repository

import (
	"context"

	"appraisals/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// QuestionRepo is the persistent question index. The sync service is its only
// writer; everything else issues read-only queries.
type QuestionRepo interface {
	// InsertAll inserts every entry; entry ids must be unique.
	InsertAll(ctx context.Context, entries []model.IndexEntry) error

	// GetByRole returns all entries whose role matches exactly.
	GetByRole(ctx context.Context, role string) ([]model.IndexEntry, error)

	// DistinctRoles returns the distinct role values present in the index.
	DistinctRoles(ctx context.Context) ([]string, error)

	// CountByRole counts indexed entries for one role.
	CountByRole(ctx context.Context, role string) (int64, error)

	// Count counts all indexed entries.
	Count(ctx context.Context) (int64, error)

	// Drop removes the entire index collection.
	Drop(ctx context.Context) error
}

type questionRepo struct {
	collection *mongo.Collection
}

func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepo) InsertAll(ctx context.Context, entries []model.IndexEntry) error {
	docs := make([]interface{}, len(entries))
	for i, e := range entries {
		docs[i] = e
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *questionRepo) GetByRole(ctx context.Context, role string) ([]model.IndexEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []model.IndexEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *questionRepo) DistinctRoles(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "role", bson.M{})
	if err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(values))
	for _, v := range values {
		if role, ok := v.(string); ok {
			roles = append(roles, role)
		}
	}

	return roles, nil
}

func (r *questionRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"role": role})
}

func (r *questionRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *questionRepo) Drop(ctx context.Context) error {
	return r.collection.Drop(ctx)
}
