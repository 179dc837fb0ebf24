package driven

// ConfigStore provides persistent key-value configuration.
// Keys use dot notation, e.g. "backend.url".
type ConfigStore interface {
	// Get retrieves a raw configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or fallback if unset.
	GetString(key, fallback string) string

	// GetInt retrieves an integer value, or fallback if unset.
	GetInt(key string, fallback int) int

	// GetBool retrieves a boolean value, or fallback if unset.
	GetBool(key string, fallback bool) bool

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Path returns the backing file path, if any.
	Path() string
}
