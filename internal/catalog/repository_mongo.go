package catalog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectMongoDB opens a pooled client and verifies the connection before
// handing the database back.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// productDoc is the raw collection shape; the store assigns _id.
type productDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Product `bson:",inline"`
}

type mongoRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewMongoRepository(db *mongo.Database, collection string, logger *zap.Logger) Repository {
	return &mongoRepository{
		collection: db.Collection(collection),
		logger:     logger,
	}
}

// ListProducts reads the whole collection. Malformed records (no name,
// negative price) are logged and skipped so the gallery never renders
// half-empty fields.
func (m *mongoRepository) ListProducts(ctx context.Context) ([]Product, error) {
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode catalog records: %w", err)
	}

	products := make([]Product, 0, len(docs))
	for _, doc := range docs {
		p := doc.Product
		p.ID = doc.ID.Hex()
		if !p.Valid() {
			m.logger.Warn("skipping malformed catalog record",
				zap.String("id", p.ID),
				zap.String("name", p.Name),
				zap.Float64("price", p.Price))
			continue
		}
		products = append(products, p)
	}

	return products, nil
}
