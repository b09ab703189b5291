package bot

// Config represents the configuration for the bot
type Config struct {
	// ChatID is the only chat the bot talks to
	ChatID int64
	// SessionSize caps the number of cards per /review session
	SessionSize int
}

// DefaultConfig returns the default bot configuration for chatID
func DefaultConfig(chatID int64) Config {
	return Config{
		ChatID:      chatID,
		SessionSize: 20,
	}
}
