package config

import (
	"strconv"

	"github.com/cleardesk/cleardesk/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Auth      Auth
	Webserver Webserver
}

// ListenAddr returns the webserver listen address.
func (c *Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Webserver.Port)
}

// Webserver implement webserver settings.
type Webserver struct {
	Domain       string // domain name for the webserver
	Port         int    // listening port for the webserver
	ShutDownTime int    // wait time in seconds before shutdown
	URL          string // base url for the webserver
}

// Auth holds token verification settings. Token issuance happens in the
// identity service; this backend only verifies.
type Auth struct {
	// TokenSecret is the HS256 secret bearer tokens are signed with.
	TokenSecret string
}
