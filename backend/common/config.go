package common

import (
	"flag"
	"os"
	"strconv"
)

var (
	Port    = flag.Int("port", 0, "the listening port (overrides PORT)")
	Workers = flag.Int("workers", 0, "number of thumbnail workers (overrides THUMBNAIL_WORKERS)")

	// DBPath is the location of the SQLite database holding the catalog.
	DBPath = "data/files_manager.db"
	// FolderPath is the root directory for uploaded blobs and their thumbnails.
	FolderPath = "/tmp/files_manager"
	// RedisConnString is the redis URL backing sessions and the job queue.
	RedisConnString = "redis://localhost:6379/0"

	ThumbnailWorkers = 2
)

// LoadConfig populates the package configuration from environment variables,
// then lets command line flags win. Call after flag.Parse.
func LoadConfig() {
	if v := os.Getenv("DB_PATH"); v != "" {
		DBPath = v
	}
	if v := os.Getenv("FOLDER_PATH"); v != "" {
		FolderPath = v
	}
	if v := os.Getenv("REDIS_CONN_STRING"); v != "" {
		RedisConnString = v
	}
	if v := os.Getenv("THUMBNAIL_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ThumbnailWorkers = n
		}
	}
	if *Workers > 0 {
		ThumbnailWorkers = *Workers
	}
	if *Port == 0 {
		*Port = 5000
		if v := os.Getenv("PORT"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*Port = n
			}
		}
	}
}
