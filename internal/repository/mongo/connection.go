// Package mongo is the MongoDB implementation of the user store.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const usersCollection = "users"

type Connection struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewConnection(ctx context.Context, uri, dbName string) (*Connection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &Connection{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

// Users returns the collection confirmed registrations are written to.
func (c *Connection) Users() *mongo.Collection {
	return c.Database.Collection(usersCollection)
}

func (c *Connection) Ping(ctx context.Context) error {
	if c.Client == nil {
		return fmt.Errorf("connection is nil")
	}
	return c.Client.Ping(ctx, readpref.Primary())
}

func (c *Connection) Close() error {
	if c.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.Client.Disconnect(ctx)
}
