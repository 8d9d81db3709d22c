package listener

import "time"

// Config holds actor settings loaded from the environment.
type Config struct {
	MailboxCapacity int           `env:"LISTENER_MAILBOX_CAPACITY" envDefault:"0"`
	StopTimeout     time.Duration `env:"LISTENER_STOP_TIMEOUT" envDefault:"5s"`
}

// DefaultConfig returns an unbounded mailbox and a five second stop timeout.
func DefaultConfig() Config {
	return Config{
		MailboxCapacity: 0,
		StopTimeout:     5 * time.Second,
	}
}
