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
	"github.com/crmdesk/crm-system/internal/core/ports"
)

const collectionClients = "clients"

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, c)
	return err
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Client
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns every client ordered by creation time.
func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find clients: %w", err)
	}
	clients := []domain.Client{}
	if err := cur.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, id string, patch ports.ClientPatch) (*domain.Client, error) {
	return r.setFields(ctx, id, clientPatchSet(patch))
}

func (r *ClientRepository) SetComment(ctx context.Context, id, comment string) error {
	_, err := r.setFields(ctx, id, bson.M{"comment": comment})
	return err
}

// SetActionFlags writes each flag under its own field path so concurrent
// edits of different keys do not overwrite each other.
func (r *ClientRepository) SetActionFlags(ctx context.Context, id string, flags domain.ActionStatusBitmap) (*domain.Client, error) {
	set := make(bson.M, len(flags))
	for k, v := range flags {
		set["action_status."+k] = v
	}
	return r.setFields(ctx, id, set)
}

func (r *ClientRepository) setFields(ctx context.Context, id string, set bson.M) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Client
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the clients collection.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "client_status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// clientPatchSet converts the non-nil fields of a patch into a $set document.
func clientPatchSet(p ports.ClientPatch) bson.M {
	set := bson.M{}
	put := func(field string, ok bool, v any) {
		if ok {
			set[field] = v
		}
	}
	put("first_name", p.FirstName != nil, deref(p.FirstName))
	put("last_name", p.LastName != nil, deref(p.LastName))
	put("phone", p.Phone != nil, deref(p.Phone))
	put("client_status", p.ClientStatus != nil, deref(p.ClientStatus))
	put("crm_link", p.CRMLink != nil, deref(p.CRMLink))
	put("expected_order_sets", p.ExpectedOrderSets != nil, deref(p.ExpectedOrderSets))
	put("expected_order_amount", p.ExpectedOrderAmount != nil, deref(p.ExpectedOrderAmount))
	put("sets_ordered_this_month", p.SetsOrderedThisMonth != nil, deref(p.SetsOrderedThisMonth))
	put("amount_this_month", p.AmountThisMonth != nil, deref(p.AmountThisMonth))
	put("debt", p.Debt != nil, deref(p.Debt))
	put("last_contact_date", p.LastContactDate != nil, deref(p.LastContactDate))
	put("task_description", p.TaskDescription != nil, deref(p.TaskDescription))
	put("comment", p.Comment != nil, deref(p.Comment))
	put("action_status", p.ActionStatus != nil, p.ActionStatus)
	return set
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
