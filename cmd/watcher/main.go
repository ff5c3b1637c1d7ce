// The watcher is the out-of-process change-data-capture consumer: it tails
// the itineraries change stream and forwards metadata to the catalog. The
// only signals it acts on are record creation (status draft) and the
// draft -> exported field update; the app itself never talks to it.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lakshay-nasa/city-scout/catalog"
	"github.com/lakshay-nasa/city-scout/models"
)

type changeEvent struct {
	OperationType string                 `bson:"operationType"`
	FullDocument  models.ItineraryRecord `bson:"fullDocument"`
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(envOr("MONGO_URI", "mongodb://localhost:27017")))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	rdb := redis.NewClient(&redis.Options{Addr: envOr("REDIS_ADDR", "localhost:6379")})
	defer rdb.Close()

	emitter := catalog.NewEmitter(envOr("DATAHUB_GMS", "http://localhost:8080"))

	log.Printf("📡 Initializing upstream source: %s", catalog.GooglePlacesURN)
	if err := emitter.EmitUpstreamSource(ctx); err != nil {
		log.Printf("❌ Failed to initialize upstream source: %v", err)
	}

	coll := client.Database("cityscout").Collection("itineraries")
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "operationType", Value: bson.D{{Key: "$in", Value: bson.A{"insert", "update", "replace"}}}},
		}}},
	}
	stream, err := coll.Watch(ctx, pipeline, options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		log.Fatalf("Failed to open change stream: %v", err)
	}
	defer stream.Close(context.Background())

	// stop on interrupt
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		log.Println("🛑 Watcher stopped.")
		cancel()
	}()

	log.Println("👀 Watching 'itineraries' collection for changes...")
	for stream.Next(ctx) {
		var ev changeEvent
		if err := stream.Decode(&ev); err != nil {
			log.Printf("Change event decode error: %v", err)
			continue
		}
		handleEvent(ctx, rdb, emitter, ev)
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		log.Fatalf("Change stream error: %v", err)
	}
}

func handleEvent(ctx context.Context, rdb *redis.Client, emitter *catalog.Emitter, ev changeEvent) {
	docID := ev.FullDocument.ID.Hex()
	exported := ev.FullDocument.Status == models.StatusExported

	// the exported push happens at most once per record, even if the
	// stream re-delivers the update
	if exported {
		set, err := rdb.SetNX(ctx, "catalog:exported:"+docID, 1, 0).Result()
		if err != nil {
			log.Printf("Redis SETNX error for %s: %v", docID, err)
		} else if !set {
			log.Printf("Skipping duplicate exported push for: %s", docID)
			return
		}
	}

	if err := emitter.EmitRecord(ctx, docID, ev.FullDocument); err != nil {
		log.Printf("❌ Failed to emit to catalog: %v", err)
		return
	}

	statusLabel := "DRAFT"
	if exported {
		statusLabel = "EXPORTED"
	}
	log.Printf("✅ Full Metadata & Lineage (%s) pushed for: %s", statusLabel, docID)
}
