package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/skinledger/internal/domain/models"
)

// Repository defines the persistence operations backing the ledger. The
// in-memory store stays authoritative; this is the durable mirror.
type Repository interface {
	LoadItems(ctx context.Context) ([]models.Item, error)
	InsertItem(ctx context.Context, item models.Item) error
	ReplaceItem(ctx context.Context, item models.Item) error
	DeleteItem(ctx context.Context, itemID string) error
	SaveSnapshot(ctx context.Context, snapshot models.PortfolioSnapshot) error
}

// MongoDBRepository implements Repository for MongoDB.
type MongoDBRepository struct {
	client        *mongo.Client
	dbName        string
	inventoryColl string
	snapshotColl  string
}

// itemDocument is the stored shape of an item. Monetary fields are persisted
// as decimal strings so no precision is lost through BSON doubles. Derived
// metrics are deliberately absent: they are recomputed from these fields.
type itemDocument struct {
	ItemID        string    `bson:"item_id"`
	Date          string    `bson:"date"`
	ItemName      string    `bson:"item_name"`
	CostPerItem   string    `bson:"cost_per_item"`
	CurrentPrice  string    `bson:"current_price"`
	NumberOfItems int64     `bson:"number_of_items"`
	ItemLink      string    `bson:"item_link"`
	CreatedAt     time.Time `bson:"created_at"`
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:        client,
		dbName:        dbName,
		inventoryColl: "inventory",
		snapshotColl:  "snapshots",
	}, nil
}

// LoadItems fetches the full inventory, newest first.
func (r *MongoDBRepository) LoadItems(ctx context.Context) ([]models.Item, error) {
	collection := r.client.Database(r.dbName).Collection(r.inventoryColl)

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []itemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode inventory: %w", err)
	}

	items := make([]models.Item, 0, len(docs))
	for _, doc := range docs {
		item, err := doc.toItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// InsertItem stores a newly created item.
func (r *MongoDBRepository) InsertItem(ctx context.Context, item models.Item) error {
	collection := r.client.Database(r.dbName).Collection(r.inventoryColl)
	if _, err := collection.InsertOne(ctx, toDocument(item)); err != nil {
		return fmt.Errorf("failed to insert item %s: %w", item.ItemID, err)
	}
	return nil
}

// ReplaceItem overwrites the stored copy of an updated item.
func (r *MongoDBRepository) ReplaceItem(ctx context.Context, item models.Item) error {
	collection := r.client.Database(r.dbName).Collection(r.inventoryColl)
	filter := bson.M{"item_id": item.ItemID}
	if _, err := collection.ReplaceOne(ctx, filter, toDocument(item), options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to replace item %s: %w", item.ItemID, err)
	}
	return nil
}

// DeleteItem removes the stored copy of a deleted item.
func (r *MongoDBRepository) DeleteItem(ctx context.Context, itemID string) error {
	collection := r.client.Database(r.dbName).Collection(r.inventoryColl)
	if _, err := collection.DeleteOne(ctx, bson.M{"item_id": itemID}); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}
	return nil
}

// SaveSnapshot appends a portfolio snapshot record.
func (r *MongoDBRepository) SaveSnapshot(ctx context.Context, snapshot models.PortfolioSnapshot) error {
	collection := r.client.Database(r.dbName).Collection(r.snapshotColl)
	if _, err := collection.InsertOne(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func toDocument(item models.Item) itemDocument {
	return itemDocument{
		ItemID:        item.ItemID,
		Date:          item.Date,
		ItemName:      item.ItemName,
		CostPerItem:   item.CostPerItem.String(),
		CurrentPrice:  item.CurrentPrice.String(),
		NumberOfItems: item.NumberOfItems,
		ItemLink:      item.ItemLink,
		CreatedAt:     item.CreatedAt,
	}
}

func (d itemDocument) toItem() (models.Item, error) {
	cost, err := decimal.NewFromString(d.CostPerItem)
	if err != nil {
		return models.Item{}, fmt.Errorf("item %s has malformed cost %q: %w", d.ItemID, d.CostPerItem, err)
	}
	price, err := decimal.NewFromString(d.CurrentPrice)
	if err != nil {
		return models.Item{}, fmt.Errorf("item %s has malformed price %q: %w", d.ItemID, d.CurrentPrice, err)
	}

	return models.Item{
		ItemID:        d.ItemID,
		Date:          d.Date,
		ItemName:      d.ItemName,
		CostPerItem:   cost,
		CurrentPrice:  price,
		NumberOfItems: d.NumberOfItems,
		ItemLink:      d.ItemLink,
		CreatedAt:     d.CreatedAt,
	}, nil
}
