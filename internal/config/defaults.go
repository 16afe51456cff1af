package config

// DefaultConfig returns the default overlay configuration: a 1500x520
// canvas with the classic W/S/A/D rows.
func DefaultConfig() *Config {
	return &Config{
		Width:   1500,
		Height:  520,
		BgColor: "#000000",
		BgAlpha: 0.55,
		Rows: []RowConfig{
			{Key: "W", Color: "#f3c85d", Enabled: true},
			{Key: "S", Color: "#9cff9c", Enabled: true},
			{Key: "A", Color: "#cf3f3f", Enabled: true},
			{Key: "D", Color: "#0aa0c8", Enabled: true},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
