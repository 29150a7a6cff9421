// Package mongo stores users, clients, both status catalogs and daily
// reports in MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	appName        = "crm-server"
)

type Config struct {
	URI      string
	Database string
	// Timeout bounds connect and the startup ping; zero means ten seconds.
	Timeout time.Duration
}

func (c Config) clientOptions() *options.ClientOptions {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	return options.Client().
		ApplyURI(c.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
}

// Connect opens a client on cfg.URI, pings the primary and returns the
// CRM database handle.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.Database == "" {
		return nil, nil, fmt.Errorf("mongo: database name is empty")
	}
	opts := cfg.clientOptions()

	connectCtx, cancel := context.WithTimeout(ctx, *opts.ServerSelectionTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// indexer is implemented by every repository owning a collection.
type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// Repositories groups the CRM collections behind one database handle.
type Repositories struct {
	Users          *UserRepository
	Clients        *ClientRepository
	ClientStatuses *ClientStatusTypeRepository
	ActionStatuses *ActionStatusTypeRepository
	Reports        *ReportRepository
}

// NewRepositories builds every repository on db.
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(db),
		Clients:        NewClientRepository(db),
		ClientStatuses: NewClientStatusTypeRepository(db),
		ActionStatuses: NewActionStatusTypeRepository(db),
		Reports:        NewReportRepository(db),
	}
}

// EnsureIndexes creates the indexes of all collections.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	for _, ix := range []indexer{r.Users, r.Clients, r.ClientStatuses, r.ActionStatuses, r.Reports} {
		if err := ix.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
