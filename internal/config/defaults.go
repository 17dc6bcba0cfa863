package config

const (
	defaultCacheDir     = "~/.cache/gameid"
	defaultBaseURL      = "https://github.com/niemasd"
	defaultFetchTimeout = 120
	defaultDelimiter    = "\t"
	defaultScanWorkers  = 4
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
		},
		Database: Database{
			BaseURL:      defaultBaseURL,
			FetchTimeout: defaultFetchTimeout,
		},
		Identify: Identify{
			PreferGameDB: false,
			Delimiter:    defaultDelimiter,
			ScanWorkers:  defaultScanWorkers,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
