package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jaitlinson/pottery-shop-backend/internal/catalog"
	"github.com/jaitlinson/pottery-shop-backend/internal/config"
)

// seed fills the catalog collection with sample pieces so a fresh install
// has something to show. Existing documents are left alone.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := catalog.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal("catalog store connect failed:", err)
	}
	coll := db.Collection(cfg.CatalogCollection)

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatal("count failed:", err)
	}
	if count > 0 {
		log.Printf("collection %q already holds %d documents, nothing to do", cfg.CatalogCollection, count)
		return
	}

	sample := []interface{}{
		catalog.Product{
			Name:        "Speckled Stoneware Bowl",
			Description: "Hand-thrown bowl with a speckled oatmeal glaze",
			Price:       19.99,
			ImageURL:    "/pottery/speckled-bowl.jpg",
			Available:   true,
		},
		catalog.Product{
			Name:        "Glazed Coffee Mug",
			Description: "12oz mug, dishwasher safe, amber drip glaze",
			Price:       12.50,
			ImageURL:    "/pottery/amber-mug.jpg",
			Available:   true,
		},
		catalog.Product{
			Name:        "Bud Vase",
			Description: "Small vase for single stems, matte white",
			Price:       24.00,
			ImageURL:    "/pottery/bud-vase.jpg",
			Available:   true,
		},
		catalog.Product{
			Name:        "Serving Platter",
			Description: "Large oval platter, reactive blue glaze",
			Price:       48.00,
			ImageURL:    "/pottery/serving-platter.jpg",
			Available:   false,
		},
	}

	res, err := coll.InsertMany(ctx, sample)
	if err != nil {
		log.Fatal("seed insert failed:", err)
	}
	log.Printf("seeded %d products into %q", len(res.InsertedIDs), cfg.CatalogCollection)
}
