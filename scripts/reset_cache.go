package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"pos-terminal/internal/kv"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Terminal Cache")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL LOCAL DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all cached customers")
	fmt.Println("  - Delete the card-id index")
	fmt.Println("  - Delete all transactions, INCLUDING UNSYNCED ONES")
	fmt.Println("  - Delete persisted settings")
	fmt.Println()
	fmt.Println("Sync pending transactions before resetting, or they are lost.")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	godotenv.Load()

	dataDir := os.Getenv("POS_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	kvs, err := kv.NewFileStore(dataDir)
	if err != nil {
		log.Fatalf("Unable to open cache at %s: %v\n", dataDir, err)
	}
	defer kvs.Close()

	ctx := context.Background()

	fmt.Println()
	fmt.Println("Resetting cache...")

	keys, err := kvs.Keys(ctx)
	if err != nil {
		log.Fatalf("Listing keys failed: %v\n", err)
	}

	for _, key := range keys {
		if err := kvs.Delete(ctx, key); err != nil {
			log.Fatalf("Deleting %s failed: %v\n", key, err)
		}
		fmt.Printf("  deleted %s\n", key)
	}

	fmt.Println()
	fmt.Printf("Done. %d keys removed from %s.\n", len(keys), dataDir)
	fmt.Println("The terminal re-creates its schema on next start.")
}
