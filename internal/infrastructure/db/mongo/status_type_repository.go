package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crmdesk/crm-system/internal/core/domain"
)

const (
	collectionClientStatusTypes = "client_status_types"
	collectionActionStatusTypes = "action_status_types"
)

// catalog is the shared CRUD over one status type collection, ordered by
// creation time.
type catalog[T any] struct {
	col *mongo.Collection
}

func (c catalog[T]) list(ctx context.Context) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := c.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.col.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.col.Name(), err)
	}
	return out, nil
}

func (c catalog[T]) find(ctx context.Context, id string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t T
	if err := c.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStatusTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (c catalog[T]) insert(ctx context.Context, t *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := c.col.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrStatusTypeExists
		}
		return err
	}
	return nil
}

func (c catalog[T]) replace(ctx context.Context, id string, t *T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.ReplaceOne(ctx, bson.M{"_id": id}, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrStatusTypeExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrStatusTypeNotFound
	}
	return nil
}

func (c catalog[T]) delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrStatusTypeNotFound
	}
	return nil
}

func (c catalog[T]) uniqueIndex(ctx context.Context, field string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := c.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// ClientStatusTypeRepository stores the client status catalog.
type ClientStatusTypeRepository struct {
	catalog[domain.ClientStatusType]
}

func NewClientStatusTypeRepository(db *mongo.Database) *ClientStatusTypeRepository {
	return &ClientStatusTypeRepository{catalog[domain.ClientStatusType]{col: db.Collection(collectionClientStatusTypes)}}
}

func (r *ClientStatusTypeRepository) List(ctx context.Context) ([]domain.ClientStatusType, error) {
	return r.list(ctx)
}

func (r *ClientStatusTypeRepository) FindByID(ctx context.Context, id string) (*domain.ClientStatusType, error) {
	return r.find(ctx, id)
}

func (r *ClientStatusTypeRepository) Create(ctx context.Context, t *domain.ClientStatusType) error {
	return r.insert(ctx, t)
}

func (r *ClientStatusTypeRepository) Update(ctx context.Context, t *domain.ClientStatusType) error {
	return r.replace(ctx, t.ID, t)
}

func (r *ClientStatusTypeRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *ClientStatusTypeRepository) EnsureIndexes(ctx context.Context) error {
	return r.uniqueIndex(ctx, "name")
}

// ActionStatusTypeRepository stores the action status catalog.
type ActionStatusTypeRepository struct {
	catalog[domain.ActionStatusType]
}

func NewActionStatusTypeRepository(db *mongo.Database) *ActionStatusTypeRepository {
	return &ActionStatusTypeRepository{catalog[domain.ActionStatusType]{col: db.Collection(collectionActionStatusTypes)}}
}

func (r *ActionStatusTypeRepository) List(ctx context.Context) ([]domain.ActionStatusType, error) {
	return r.list(ctx)
}

func (r *ActionStatusTypeRepository) FindByID(ctx context.Context, id string) (*domain.ActionStatusType, error) {
	return r.find(ctx, id)
}

func (r *ActionStatusTypeRepository) Create(ctx context.Context, t *domain.ActionStatusType) error {
	return r.insert(ctx, t)
}

func (r *ActionStatusTypeRepository) Update(ctx context.Context, t *domain.ActionStatusType) error {
	return r.replace(ctx, t.ID, t)
}

func (r *ActionStatusTypeRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

func (r *ActionStatusTypeRepository) EnsureIndexes(ctx context.Context) error {
	return r.uniqueIndex(ctx, "key")
}
