package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// CLI flags
var (
	countiesPath       = flag.String("counties", "", "Path to counties GeoJSON")
	constituenciesPath = flag.String("constituencies", "", "Path to constituencies GeoJSON")
	wardsPath          = flag.String("wards", "", "Path to wards GeoJSON")
	rosterPath         = flag.String("roster", "", "Path to the officials roster CSV")
	dsn                = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	dryRun             = flag.Bool("dry-run", false, "Parse + validate only; no DB writes")
	confirm            = flag.Bool("confirm", false, "Required to write to the database")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	if *countiesPath == "" && *constituenciesPath == "" && *wardsPath == "" && *rosterPath == "" {
		fatalf("nothing to do: pass at least one of --counties, --constituencies, --wards, --roster")
	}
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	plan, err := loadAll(*countiesPath, *constituenciesPath, *wardsPath, *rosterPath)
	if err != nil {
		fatalf("load failed: %v", err)
	}
	fmt.Printf("Loaded %d counties, %d constituencies, %d wards, %d roster rows\n",
		len(plan.Counties), len(plan.Constituencies), len(plan.Wards), len(plan.Roster))

	if *dryRun {
		fmt.Println("Dry run complete. No changes made.")
		return
	}
	if !*confirm {
		fatalf("Refusing to run without --confirm. Add --dry-run to preview.")
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	start := time.Now()
	if err := apply(ctx, db, plan); err != nil {
		fatalf("import failed: %v", err)
	}
	fmt.Printf("Import complete in %s\n", time.Since(start).Round(time.Millisecond))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
