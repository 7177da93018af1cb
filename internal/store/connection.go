package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	ProductsCollection = "products"
	RecordsCollection  = "records"
)

// Config holds MongoDB connection settings
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// DefaultConfig returns a configuration pointing at a local mongod
func DefaultConfig() Config {
	return Config{
		URI:            "mongodb://localhost:27017",
		Database:       "test_example",
		ConnectTimeout: 10 * time.Second,
	}
}

// Connection wraps the driver client and the application database.
// It is opened once at startup and handed to every repository that needs it.
type Connection struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewConnection connects to MongoDB and verifies the server is reachable
func NewConnection(ctx context.Context, cfg Config) (*Connection, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ConnectTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	conn := &Connection{Client: client, DB: client.Database(cfg.Database)}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := conn.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return conn, nil
}

// Products returns the products collection
func (c *Connection) Products() *mongo.Collection {
	return c.DB.Collection(ProductsCollection)
}

// Records returns the employee records collection
func (c *Connection) Records() *mongo.Collection {
	return c.DB.Collection(RecordsCollection)
}

// Ping checks the primary is reachable
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique index backing product name uniqueness
func (c *Connection) EnsureIndexes(ctx context.Context) error {
	_, err := c.Products().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("products_name_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create products name index: %w", err)
	}
	return nil
}

// Close disconnects the client
func (c *Connection) Close(ctx context.Context) error {
	if c.Client == nil {
		return nil
	}
	if err := c.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}
