// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/place-discovery/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	seedID := flag.String("id", "", "Global id of the seed place")
	radius := flag.Float64("radius", 5, "Radius in miles")
	maxResults := flag.Int("max", 5, "Max pages to warm")
	flag.Parse()

	if *seedID == "" {
		log.Fatal("-id is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.WarmEvent{
		EventID:     uuid.New(),
		SeedID:      *seedID,
		RadiusMiles: *radius,
		MaxResults:  *maxResults,
		RequestedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamNearbyWarm,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamNearbyWarm)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Event ID: %s\n", event.EventID)
	fmt.Printf("   Seed: %s, radius %.2f mi, max %d\n", event.SeedID, event.RadiusMiles, event.MaxResults)
}
