package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tasks/internal/tasks/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection = "users"
	tasksCollection = "tasks"

	connectTimeout = 10 * time.Second
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to uri and uses the named database. The connection is
// checked with a ping so a bad URI fails at startup rather than on the first
// request.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Close() error { return s.client.Disconnect(context.Background()) }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Users() store.Users { return &usersRepo{c: s.db.Collection(usersCollection)} }
func (s *Store) Tasks() store.Tasks { return &tasksRepo{c: s.db.Collection(tasksCollection)} }

// ApplyMigrations has no schema to apply, it only makes sure the indexes
// exist. Creating an index that is already there is a no-op.
func (s *Store) ApplyMigrations() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_username_unique"),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	_, err = s.db.Collection(tasksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("tasks_owner"),
	})
	if err != nil {
		return fmt.Errorf("tasks index: %w", err)
	}

	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func mapDuplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrAlreadyExists
	}
	return err
}
