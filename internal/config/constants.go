package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the recitation log database
	DefaultDatabasePath = "./hifz-tracker.db"

	// DefaultLayoutDatabasePath is the default path for the QUL page layout database
	DefaultLayoutDatabasePath = "./qul_downloads/qudratullah-indopak-15-lines.db"

	// DefaultScriptDatabasePath is the default path for the QUL word script database
	DefaultScriptDatabasePath = "./qul_downloads/indopak.db"
)
