// migrate-to-postgres copies player profiles from SQLite to PostgreSQL.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/mysterioushouse.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user mysterioushouse \
//	    -pg-password secret \
//	    -pg-database mysterioushouse
package main

import (
	"context"
	"flag"
	"log"

	"github.com/mysterioushouse/server/internal/database"
	"github.com/mysterioushouse/server/internal/profile"
)

func main() {
	defaults := database.DefaultPostgresConfig()
	sqlitePath := flag.String("sqlite", "data/mysterioushouse.db", "Path to SQLite database")
	pgHost := flag.String("pg-host", defaults.Host, "PostgreSQL host")
	pgPort := flag.Int("pg-port", defaults.Port, "PostgreSQL port")
	pgUser := flag.String("pg-user", defaults.User, "PostgreSQL user")
	pgPassword := flag.String("pg-password", "", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", defaults.Database, "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", defaults.SSLMode, "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("SQLite to PostgreSQL Profile Migration")
	log.Println("======================================")

	log.Printf("Opening SQLite database: %s", *sqlitePath)
	src, err := database.Open(*sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite database: %v", err)
	}
	defer src.Close()

	pg := defaults
	pg.Host, pg.Port, pg.User, pg.Password = *pgHost, *pgPort, *pgUser, *pgPassword
	pg.Database, pg.SSLMode = *pgDatabase, *pgSSLMode

	// Opening runs the schema migration on PostgreSQL.
	log.Printf("Opening PostgreSQL database: %s@%s:%d/%s", pg.User, pg.Host, pg.Port, pg.Database)
	dst, err := database.OpenWithConfig(database.Config{Driver: string(database.DialectPostgres), Postgres: pg})
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL database: %v", err)
	}
	defer dst.Close()

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
	}

	ctx := context.Background()
	count, err := migrateProfiles(ctx, src, dst, *dryRun)
	if err != nil {
		log.Fatalf("Failed to migrate profiles: %v", err)
	}

	log.Println("======================================")
	log.Printf("Migration complete! Profiles migrated: %d", count)
	if *dryRun {
		log.Println("(DRY RUN - No actual changes were made)")
	}
}

// migrateProfiles copies every profile from src to dst, replacing any
// existing row with the same key.
func migrateProfiles(ctx context.Context, src, dst *database.Database, dryRun bool) (int64, error) {
	var count int64
	err := src.EachProfile(ctx, func(key string, p profile.Profile) error {
		count++
		if dryRun {
			return nil
		}
		return dst.PutProfile(ctx, key, p)
	})
	return count, err
}
