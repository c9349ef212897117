package toml

type fileSchema struct {
	BaseURL         string            `toml:"base_url"`
	PollInterval    string            `toml:"poll_interval"`
	RequestTimeout  string            `toml:"request_timeout"`
	TypewriterDelay string            `toml:"typewriter_delay"`
	Diagnostics     diagnosticsSchema `toml:"diagnostics"`
}

type diagnosticsSchema struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

func toSchema(config Config) fileSchema {
	return fileSchema{
		BaseURL:         config.BaseURL,
		PollInterval:    config.PollInterval.String(),
		RequestTimeout:  config.RequestTimeout.String(),
		TypewriterDelay: config.TypewriterDelay.String(),
		Diagnostics: diagnosticsSchema{
			Path:  config.Diagnostics.Path,
			Level: config.Diagnostics.Level,
		},
	}
}
