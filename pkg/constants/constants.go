// Package constants provides shared constants for the venture-forecast application.
package constants

// DateTimeLayout is the format expected for the optional project start date
// and is also the output period format.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerMonth is the month length used when expressing payback periods
	DaysPerMonth = 30

	// WorkHoursPerDay converts a daily wage into an hourly rate
	WorkHoursPerDay = 8

	// MinutesPerHour converts an hourly rate into a per-minute rate
	MinutesPerHour = 60

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// OverrideMonths is the number of literal monthly overrides needed to
	// replace the first project year of a recurring entry
	OverrideMonths = 12

	// DecliningBalanceFactor is the multiplier applied to the straight-line
	// rate for double-declining depreciation
	DecliningBalanceFactor = 2.0
)

// IRR search constants
const (
	// IRRLowerBound is the lowest rate (as a decimal) searched for a root
	IRRLowerBound = -0.99

	// IRRUpperBound is the highest rate (as a decimal) searched for a root
	IRRUpperBound = 5.0

	// IRRMaxIterations caps the bisection loop
	IRRMaxIterations = 200

	// IRRTolerance is the bracket width and NPV magnitude considered converged
	IRRTolerance = 1e-7
)

// Duration unit constants
const (
	// DurationUnitYears interprets the project duration as years
	DurationUnitYears = "years"

	// DurationUnitMonths interprets the project duration as months
	DurationUnitMonths = "months"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON output format
	OutputFormatJSON = "json"

	// OutputFormatXLSX is the spreadsheet output format
	OutputFormatXLSX = "xlsx"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "examples/sample-business.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultCacheBackend is the projection cache used when none is configured
	DefaultCacheBackend = "memory"

	// DefaultCacheTTL is the default lifetime of a cached projection
	DefaultCacheTTL = "10m"

	// CacheKeyPrefix namespaces projection entries in shared caches
	CacheKeyPrefix = "venture-forecast:projection:"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)
