package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dpatil-neu/skycatalog/internal/flagx"
	"github.com/dpatil-neu/skycatalog/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "30s" and integer nanoseconds.
type JsonConfig struct {
	DatabaseDSN    string         `json:"database_dsn"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
	GoesBucket     string         `json:"goes_bucket"`
	NexradBucket   string         `json:"nexrad_bucket"`
	StationFeedURL string         `json:"station_feed_url"`
	GoesProducts   []string       `json:"goes_products"`
	NexradYears    []string       `json:"nexrad_years"`
	FeedTimeout    timex.Duration `json:"feed_timeout"`
	CronSchedule   string         `json:"cron_schedule"`
	RunOnce        bool           `json:"run_once"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The JSON file path is taken from the -c or -config
// command-line flags; when neither is set, no file is loaded. The function
// panics on unreadable or invalid JSON.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.DatabaseDSN = c.DatabaseDSN
	config.S3AccessKey = c.S3AccessKey
	config.S3SecretKey = c.S3SecretKey
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.GoesBucket = c.GoesBucket
	config.NexradBucket = c.NexradBucket
	config.StationFeedURL = c.StationFeedURL
	config.GoesProducts = c.GoesProducts
	config.NexradYears = c.NexradYears
	config.FeedTimeout = time.Duration(c.FeedTimeout.Duration)
	config.CronSchedule = c.CronSchedule
	config.RunOnce = c.RunOnce
}
