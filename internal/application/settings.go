package application

import (
	"log/slog"
	"time"
)

const (
	DefaultPollInterval    = 2 * time.Second
	DefaultTypewriterDelay = 30 * time.Millisecond
	DefaultBootMinDelay    = 200 * time.Millisecond
	DefaultBootJitter      = 500 * time.Millisecond
	DefaultBootSettle      = time.Second
)

type Settings struct {
	PollInterval    time.Duration
	TypewriterDelay time.Duration
	BootMinDelay    time.Duration
	BootJitter      time.Duration
	BootSettle      time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		PollInterval:    DefaultPollInterval,
		TypewriterDelay: DefaultTypewriterDelay,
		BootMinDelay:    DefaultBootMinDelay,
		BootJitter:      DefaultBootJitter,
		BootSettle:      DefaultBootSettle,
	}
}

func (s Settings) withDefaults() Settings {
	defaults := DefaultSettings()
	if s.PollInterval <= 0 {
		s.PollInterval = defaults.PollInterval
	}
	if s.TypewriterDelay <= 0 {
		s.TypewriterDelay = defaults.TypewriterDelay
	}
	if s.BootMinDelay <= 0 {
		s.BootMinDelay = defaults.BootMinDelay
	}
	if s.BootJitter < 0 {
		s.BootJitter = defaults.BootJitter
	}
	if s.BootSettle <= 0 {
		s.BootSettle = defaults.BootSettle
	}
	return s
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
