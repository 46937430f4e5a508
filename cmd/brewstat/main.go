// Command brewstat prints brewery statistics, listings and charts from the
// Open Brewery DB, or opens the terminal dashboard.
//
// Usage:
//
//	brewstat stats
//	brewstat list --search odd --type regional
//	brewstat --format yaml charts
//	brewstat tui
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/brewery-dashboard/internal/cli"
)

func main() {
	_ = godotenv.Load(".env.local")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Main(ctx)
	stop()
	os.Exit(code)
}
