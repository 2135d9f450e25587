package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/khalilbouhlel1/threadly-api/config"
	"github.com/khalilbouhlel1/threadly-api/internal/domain/entity"
	"github.com/khalilbouhlel1/threadly-api/internal/infrastructure/mongodb"
	"github.com/khalilbouhlel1/threadly-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDB)

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}
	fmt.Println("indexes ensured")

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	hash, err := helpers.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now()
	res, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"email": cfg.AdminEmail},
		bson.M{
			"$set": bson.M{
				"name":       "Store Admin",
				"password":   hash,
				"is_admin":   true,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	if res.UpsertedID != nil {
		fmt.Printf("seeded admin user: email=%s\n", cfg.AdminEmail)
	} else {
		fmt.Printf("refreshed admin user: email=%s\n", cfg.AdminEmail)
	}

	count, err := db.Collection("products").CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("failed to count products: %v", err)
	}
	if count > 0 {
		fmt.Printf("catalog already has %d products, skipping samples\n", count)
		return
	}

	samples := []any{
		sample("Classic Crew Tee", "Heavyweight cotton tee with a relaxed fit.", 24.90, "Men", "Topwear",
			[]string{"S", "M", "L", "XL"}, map[string]int{"S": 12, "M": 20, "L": 15, "XL": 8}),
		sample("Slim Denim Jacket", "Washed indigo denim with brass hardware.", 89.00, "Women", "Winterwear",
			[]string{"S", "M", "L"}, map[string]int{"S": 5, "M": 7, "L": 3}),
		sample("Kids Cargo Shorts", "Ripstop shorts with an elastic waistband.", 19.50, "Kids", "Bottomwear",
			[]string{"M", "L"}, map[string]int{"M": 10, "L": 0}),
	}
	if _, err := db.Collection("products").InsertMany(ctx, samples); err != nil {
		log.Fatalf("failed to seed products: %v", err)
	}
	fmt.Printf("seeded %d sample products\n", len(samples))
}

func sample(name, desc string, price float64, category, sub string, sizes []string, stock map[string]int) entity.Product {
	now := time.Now()
	return entity.Product{
		Name:        name,
		Description: desc,
		Price:       price,
		Category:    category,
		Subcategory: sub,
		Sizes:       sizes,
		Stock:       stock,
		Images:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
