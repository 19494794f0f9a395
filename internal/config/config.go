package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`

	Storage Storage `envPrefix:"STORAGE_"`
	Auth    Auth    `envPrefix:"AUTH_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host      string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port      string `env:"HTTP_PORT" envDefault:"8080"`
	StaticDir string `env:"HTTP_STATIC_DIR" envDefault:"web"`
}

type Storage struct {
	// Backend selects the store implementation: "sqlite" or "memory".
	Backend      string `env:"BACKEND" envDefault:"sqlite"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"bakery.db"`
}

type Auth struct {
	TokenSecret string        `env:"TOKEN_SECRET" envDefault:"bakery-dev-secret"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	// AdminContacts lists phone numbers or emails that receive the admin
	// role at registration, so a fresh store can be administered at all.
	AdminContacts []string `env:"ADMIN_CONTACTS" envSeparator:","`
}
