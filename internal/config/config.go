package config // package config loads application configuration from environment variables

import (
	"os"            // os provides access to environment variables
	"path/filepath" // filepath joins the data directory with default file names

	"github.com/joho/godotenv" // godotenv loads a local .env file when present
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The admin key is deliberately allowed to be
// empty: the admin endpoints answer with a server misconfiguration error
// until one is set, but the public check-in flow keeps working.
type Config struct {
	Env       string // application environment (e.g. "dev", "prod")
	Port      string // HTTP port to listen on
	AdminKey  string // pre-shared secret for the X-Admin-Key header (may be empty)
	DataDir   string // directory holding the store file and guest list
	DBPath    string // path of the SQLite store file
	GuestsCSV string // path of the guest list seed/export file

	BrokerURL     string // AMQP broker URL; empty disables event publishing
	QueueConsumer bool   // run the in-process check-in log consumer
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is honoured when present so
// local runs do not need exported variables.  Every value has a default;
// nothing here is fatal.
func Load() Config {
	_ = godotenv.Load() // best effort; absence of .env is normal in prod

	dataDir := getenv("CHECKIN_DATA_DIR", "data")
	return Config{
		Env:       getenv("APP_ENV", "dev"),
		Port:      getenv("APP_PORT", "8080"),
		AdminKey:  os.Getenv("ADMIN_KEY"),
		DataDir:   dataDir,
		DBPath:    getenv("CHECKIN_DB", filepath.Join(dataDir, "checkin.db")),
		GuestsCSV: getenv("GUESTS_CSV", filepath.Join(dataDir, "guests.csv")),

		BrokerURL:     getenv("RABBITMQ_URL", os.Getenv("AMQP_URL")),
		QueueConsumer: os.Getenv("QUEUE_CONSUMER_ENABLED") == "true",
	}
}

// getenv returns the value of an environment variable or a default when the
// variable is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
