// Debug tool: refresh a single topic against the live sources and print the
// completed record as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hverdal/marketpulse/internal/adapters/sourcefetcher"
	"github.com/hverdal/marketpulse/internal/adapters/topicprovider"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <topic>", os.Args[0])
	}

	topicKey := os.Args[1]
	topic, found := topicprovider.TopicByKey(topicKey)
	if !found {
		log.Printf("Unknown topic %q. Available topics:", topicKey)
		for _, known := range topicprovider.AllTopics() {
			log.Printf("  %s", known.Key)
		}
		os.Exit(1)
	}

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}
	fetcher := sourcefetcher.New(httpClient)

	provider, err := topicprovider.NewLiveTopicProvider(fetcher, time.Now)
	if err != nil {
		log.Fatalf("Failed to initialize topic provider: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	record := provider.RefreshTopic(ctx, topic)

	data, err := json.MarshalIndent(record.Record, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal record: %v", err)
	}

	fmt.Printf("%s\n", data)
}
