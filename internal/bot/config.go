package bot

// Config represents the configuration for the bot
type Config struct {
	// Default analytics range shown by /stats
	DefaultRange string
	// Where /report writes the workbook
	ReportPath string
	// Maximum topics listed by /due
	TopicListLimit int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultRange:   "30d",
		ReportPath:     "data/report.xlsx",
		TopicListLimit: 25,
	}
}
