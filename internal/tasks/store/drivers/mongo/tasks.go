package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type taskDoc struct {
	ID          string    `bson:"_id"`
	Description string    `bson:"description"`
	Completed   bool      `bson:"completed"`
	Owner       string    `bson:"owner"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (d taskDoc) domain() domain.Task {
	return domain.Task{
		ID:          d.ID,
		Description: d.Description,
		Completed:   d.Completed,
		Owner:       d.Owner,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type tasksRepo struct {
	c *mongo.Collection
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	_, err := r.c.InsertOne(ctx, taskDoc{
		ID:          t.ID,
		Description: t.Description,
		Completed:   t.Completed,
		Owner:       t.Owner,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	})
	return mapDuplicate(err)
}

func (r *tasksRepo) ListTasksByOwner(ctx context.Context, owner string) ([]domain.Task, error) {
	// ULIDs sort by creation time, so _id order is insertion order.
	cur, err := r.c.Find(ctx, bson.M{"owner": owner}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []taskDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.domain())
	}
	return tasks, nil
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	var doc taskDoc
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	return doc.domain(), nil
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": t.ID}, bson.M{"$set": bson.M{
		"description": t.Description,
		"completed":   t.Completed,
		"updated_at":  t.UpdatedAt.UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
