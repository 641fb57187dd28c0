package client

import (
	"context"
	"time"

	"shoptrack/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client bundles the external collaborators a service talks to: the
// Mongo client plus HTTP clients for the sibling services. Sub-clients
// are nil until explicitly set by the service that needs them.
type Client struct {
	Mongo *MongoClient

	WorkOrderClient  *WorkOrderClient
	TechnicianClient *TechnicianClient
	CustomerClient   *CustomerClient

	log *logger.Logger
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) {
	c.log = log
	c.Mongo = NewMongoClient(log, mongoURI, mongoConnTimeout)
}

func (c *Client) SetWorkOrderClient(baseURL string) {
	c.WorkOrderClient = NewWorkOrderClient(baseURL)
}

func (c *Client) SetTechnicianClient(baseURL string) {
	c.TechnicianClient = NewTechnicianClient(baseURL)
}

func (c *Client) SetCustomerClient(baseURL string) {
	c.CustomerClient = NewCustomerClient(baseURL)
}

func (c *Client) GracefulShutdown() {
	if c.Mongo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Mongo.Client.Disconnect(ctx); err != nil && c.log != nil {
		c.log.Error("Failed to disconnect from MongoDB", "error", err)
	}
}

type MongoClient struct {
	Client *mongo.Client
}

func NewMongoClient(log *logger.Logger, mongoURI string, mongoConnTimeout time.Duration) *MongoClient {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB",
			"error", err,
			"uri", mongoURI,
		)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", "error", err)
	}

	log.Info("Successfully connected to MongoDB")
	return &MongoClient{Client: client}
}
