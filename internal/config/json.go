package config

import (
	"encoding/json"
	"os"

	"github.com/hospitalapp/client-go/internal/flagx"
	"github.com/hospitalapp/client-go/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// rely on timex.Duration so JSON can carry either strings like "30s" or
// integer nanoseconds.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	CredentialsDB  string         `json:"credentials_db"`
	UseEncryption  *bool          `json:"use_encryption"`
	Verbose        *bool          `json:"verbose"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. No flag means no JSON is loaded. Read or parse failures
// panic: a config file that exists but cannot be used is a startup error.
// Absent fields keep their current value.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CredentialsDB != "" {
		cfg.CredentialsDB = jc.CredentialsDB
	}
	if jc.UseEncryption != nil {
		cfg.UseEncryption = *jc.UseEncryption
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
}
