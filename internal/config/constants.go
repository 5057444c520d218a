package config

const (
	// DefaultDatabasePath is the SQLite file used by both the server and the local CLI backend
	DefaultDatabasePath = "./qotd.db"

	DefaultPort = 8080
)
