// Package constants provides shared constants for the moolah application.
package constants

// Financial constants
const (
	// PercentageMultiplier converts a rate in percent units into a fraction.
	PercentageMultiplier = 100

	// DefaultPrecision is the number of decimal places used when displaying results
	DefaultPrecision = 2

	// MaxPrecision is the largest display precision supported by the decimal type
	MaxPrecision = 19
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024
)
