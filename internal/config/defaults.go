package config

const (
	defaultFlacBinary = "flac"
	defaultLameBinary = "lame"
	defaultLogFormat  = "console"
	defaultLogLevel   = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FlacBinary: defaultFlacBinary,
			LameBinary: defaultLameBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
