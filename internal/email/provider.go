package email

// Provider sends raw email messages.
type Provider interface {
	// Send delivers a single message.
	Send(email *Email) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases provider resources.
	Close() error
}
