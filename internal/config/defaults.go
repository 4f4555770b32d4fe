package config

const (
	defaultEventDir         = "~/retrosheet"
	defaultDataDir          = "~/.local/share/scorebook"
	defaultLogDir           = "~/.local/share/scorebook/logs"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 60
	defaultIngestWorkers    = 4
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			EventDir: defaultEventDir,
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
		},
		Ingest: Ingest{
			Workers: defaultIngestWorkers,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
