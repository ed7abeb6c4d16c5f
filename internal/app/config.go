package app

import "time"

// Storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config is the application level configuration. Listener and database
// settings live in httpserver.Config and pg.Config.
type Config struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	ServiceName  string `env:"SERVICE_NAME" envDefault:"taskboard"`
	LogLevel     string `env:"LOG_LEVEL"`
	LogFormat    string `env:"LOG_FORMAT"`
	Storage      string `env:"STORAGE" envDefault:"memory"`
	RolesFile    string `env:"RBAC_ROLES_FILE"`
	MessagesFile string `env:"VALIDATION_MESSAGES_FILE"`
	RoleHeader   string `env:"ROLE_HEADER" envDefault:"X-Role"`

	// LooseChoice lets "in" match JSON numbers against listed strings.
	LooseChoice bool `env:"VALIDATION_LOOSE_CHOICE" envDefault:"true"`
	StrictRules bool `env:"VALIDATION_STRICT_RULES" envDefault:"false"`

	ReadinessTimeout time.Duration `env:"READINESS_TIMEOUT" envDefault:"2s"`
}
