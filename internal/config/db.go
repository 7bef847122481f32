package config

// Supported gorm engines.
const (
	EngineMySQL  = "mysql"
	EngineSQLite = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	// GormEngine selects the gorm driver: "mysql" or "sqlite".
	GormEngine string
	// File is the database file path when GormEngine is "sqlite".
	File string

	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}
