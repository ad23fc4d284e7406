package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dpatil-neu/skycatalog/internal/flagx"
)

// parseFlags populates selected scraper Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-k string   S3 access key (empty for anonymous access)
//	-p string   S3 secret key
//	-r string   S3 region
//	-e string   S3 base endpoint
//	-g string   GOES source bucket
//	-n string   NEXRAD source bucket
//	-u string   station feed URL
//	-q string   comma-separated GOES products
//	-y string   comma-separated NEXRAD years
//	-s string   cron schedule for recurring rebuilds
//	-o          run once and exit
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-p", "-r", "-e", "-g", "-n", "-u", "-q", "-y", "-s", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.S3AccessKey, "k", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.GoesBucket, "g", config.GoesBucket, "GOES source bucket")
	fs.StringVar(&config.NexradBucket, "n", config.NexradBucket, "NEXRAD source bucket")
	fs.StringVar(&config.StationFeedURL, "u", config.StationFeedURL, "station feed URL")

	products := fs.String("q", strings.Join(config.GoesProducts, ","), "comma-separated GOES products")
	years := fs.String("y", strings.Join(config.NexradYears, ","), "comma-separated NEXRAD years")

	fs.StringVar(&config.CronSchedule, "s", config.CronSchedule, "cron schedule")
	fs.BoolVar(&config.RunOnce, "o", config.RunOnce, "run once and exit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.GoesProducts = splitList(*products)
	config.NexradYears = splitList(*years)
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
