package database

import (
	"log"
)

func RunMigrations() {
	if err := AutoMigrate(DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}
