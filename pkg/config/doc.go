// Package config loads typed configuration from environment variables.
//
// Structs are annotated with `env` tags understood by
// github.com/caarlos0/env/v11. A .env file in the working directory is read
// once through github.com/joho/godotenv before the first parse, and LoadEnv
// reads additional files explicitly.
//
//	type Config struct {
//		DatabaseURL string `env:"DATABASE_URL,required"`
//		Storage     string `env:"STORAGE" envDefault:"postgres"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Every configuration type is parsed once per process and served from a
// cache afterwards; ResetCache clears it between tests. Failures wrap
// ErrParsingConfig or ErrLoadingEnvFile and can be matched with errors.Is.
package config
