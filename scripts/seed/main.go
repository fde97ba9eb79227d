// Seed adds demo tasks to the database. Run from project root: go run ./scripts/seed
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/config"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/database"
	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
)

var (
	locations  = []string{"New York", "London", "Tokyo", "Berlin", "Sydney", ""}
	priorities = models.Priorities
	statuses   = models.Statuses
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL not set")
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "DB connection failed:", err)
		os.Exit(1)
	}
	if err := database.Migrate(ctx, db); err != nil {
		fmt.Fprintln(os.Stderr, "Schema failed:", err)
		os.Exit(1)
	}

	const total = 1_000
	const batchSize = 200
	start := time.Now()

	for batch := 0; batch < total/batchSize; batch++ {
		args := make([]interface{}, 0, batchSize*7)
		placeholders := make([]string, 0, batchSize)
		for i := 0; i < batchSize; i++ {
			n := batch*batchSize + i + 1
			base := 7 * i
			placeholders = append(placeholders, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,NOW(),NOW())",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
			var due *time.Time
			if n%3 != 0 {
				d := time.Now().AddDate(0, 0, n%21-7)
				due = &d
			}
			args = append(args,
				uuid.New().String(),
				fmt.Sprintf("Task %d", n),
				fmt.Sprintf("Description for task %d", n),
				priorities[n%len(priorities)],
				statuses[n%len(statuses)],
				locations[n%len(locations)],
				due,
			)
		}
		q := `INSERT INTO tasks (id, title, description, priority, status, location, due_date, created_at, updated_at) VALUES ` +
			strings.Join(placeholders, ",")
		if _, err := db.ExecContext(ctx, q, args...); err != nil {
			fmt.Fprintln(os.Stderr, "Insert failed:", err)
			os.Exit(1)
		}
		fmt.Printf("\rInserted %d / %d", (batch+1)*batchSize, total)
	}

	fmt.Printf("\nDone: %d tasks in %v\n", total, time.Since(start))
}
