package config

import (
	"encoding/json"
	"os"

	"github.com/dsmirnov/authkit/internal/flagx"
	"github.com/dsmirnov/authkit/internal/timex"
)

// JsonConfig is the JSON DTO for Config. Duration fields accept either a
// duration string ("24h") or integer nanoseconds.
type JsonConfig struct {
	DatabaseDSN    string         `json:"database_dsn"`
	RetentionGrace timex.Duration `json:"retention_grace"`
}

// parseJson overlays values from the JSON file named by -c/-config, if any.
// An unreadable or invalid file panics; silently running a sweeper against
// the wrong database would be worse.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.DatabaseDSN = c.DatabaseDSN
	config.RetentionGrace = c.RetentionGrace.Duration
}
