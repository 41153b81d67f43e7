package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travelhealth/internal/model"
	"travelhealth/internal/repository"
)

// Seeds the cityDatasets collection with per-city diet reference data. Trip
// analysis refuses cities that are not present here.
func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "travelhealth"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	datasetRepo := repository.NewDatasetRepo(client.Database(mongoDB))

	datasets := []model.CityDataset{
		{
			City: "Mumbai",
			DietCSV: "meal,staples,typical_dishes,spice_level,street_food_risk\n" +
				"breakfast,\"rice flakes, semolina\",\"poha, upma, idli\",medium,high\n" +
				"lunch,\"wheat, rice, lentils\",\"thali, dal, bhaji\",high,medium\n" +
				"dinner,\"rice, fish\",\"fish curry, biryani\",high,medium\n",
		},
		{
			City: "Delhi",
			DietCSV: "meal,staples,typical_dishes,spice_level,street_food_risk\n" +
				"breakfast,\"wheat, dairy\",\"paratha, chole bhature\",high,high\n" +
				"lunch,\"wheat, lentils\",\"rajma chawal, butter chicken\",high,medium\n" +
				"dinner,\"wheat, paneer\",\"kebab, dal makhani\",high,medium\n",
		},
		{
			City: "London",
			DietCSV: "meal,staples,typical_dishes,spice_level,street_food_risk\n" +
				"breakfast,\"bread, eggs\",\"full english, porridge\",low,low\n" +
				"lunch,\"bread, potato\",\"sandwich, fish and chips\",low,low\n" +
				"dinner,\"meat, potato\",\"roast dinner, curry\",medium,low\n",
		},
		{
			City: "New York",
			DietCSV: "meal,staples,typical_dishes,spice_level,street_food_risk\n" +
				"breakfast,\"bread, eggs\",\"bagel, pancakes\",low,low\n" +
				"lunch,\"bread, meat\",\"pizza, deli sandwich\",low,medium\n" +
				"dinner,varied,\"steak, pasta, sushi\",medium,low\n",
		},
		{
			City: "Tokyo",
			DietCSV: "meal,staples,typical_dishes,spice_level,street_food_risk\n" +
				"breakfast,\"rice, fish\",\"rice, miso soup, grilled fish\",low,low\n" +
				"lunch,\"rice, noodles\",\"ramen, bento\",low,low\n" +
				"dinner,\"rice, fish\",\"sushi, izakaya dishes\",low,low\n",
		},
		{
			City: "Dubai",
			DietCSV: "meal,staples,typical_dishes,spice_level,street_food_risk\n" +
				"breakfast,\"bread, dairy\",\"shakshuka, labneh\",medium,low\n" +
				"lunch,\"rice, lamb\",\"machboos, shawarma\",medium,medium\n" +
				"dinner,\"rice, grilled meat\",\"mixed grill, mezze\",medium,low\n",
		},
	}

	for i := range datasets {
		if err := datasetRepo.Upsert(ctx, &datasets[i]); err != nil {
			log.Fatalf("Failed to seed dataset for %s: %v", datasets[i].City, err)
		}
		log.Printf("Seeded diet dataset for %s", datasets[i].City)
	}

	log.Printf("Done: %d city datasets", len(datasets))
}
