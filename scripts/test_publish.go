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
)

type CoordsBackfillEvent struct {
	ListingID uuid.UUID `json:"listing_id"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	address := flag.String("address", "Plot 5 Kampala Road", "Address to geocode")
	city := flag.String("city", "Kampala", "City of the address")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое событие
	event := CoordsBackfillEvent{
		ListingID: uuid.New(),
		Address:   *address,
		City:      *city,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:listings:coords",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: stream:listings:coords\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Listing ID: %s\n", event.ListingID)
	fmt.Printf("   Address: %s, %s\n", event.Address, event.City)

	// Ожидание ответа
	fmt.Printf("\n⏳ Waiting for response in stream:listings:coords:done...\n")

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for response")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{"stream:listings:coords:done", "0"},
				Count:   10,
				Block:   0,
			}).Result()

			if err != nil && err != redis.Nil {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var response map[string]interface{}
					if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
						continue
					}

					if listingID, ok := response["listing_id"].(string); ok {
						if listingID == event.ListingID.String() {
							fmt.Printf("\n✅ Response received!\n")
							prettyJSON, _ := json.MarshalIndent(response, "", "  ")
							fmt.Printf("%s\n", prettyJSON)
							return
						}
					}
				}
			}
		}
	}
}
