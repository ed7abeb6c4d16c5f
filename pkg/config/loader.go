package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// registry holds one parsed copy per configuration type.
type registry struct {
	mu      sync.Mutex
	entries map[reflect.Type]*entry
}

type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	loaded = &registry{entries: make(map[reflect.Type]*entry)}

	dotenvOnce sync.Once
)

// Load fills v from the process environment using `env` struct tags.
// A .env file in the working directory is read once, if present. Each
// configuration type is parsed at most once; later calls copy the cached
// value into v.
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		// A missing .env file is not an error.
		_ = godotenv.Load()
	})

	e := loaded.entry(reflect.TypeFor[T]())
	e.once.Do(func() {
		var cfg T
		if err := env.Parse(&cfg); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = cfg
	})
	if e.err != nil {
		// Failed parses are not cached so a fixed environment can be retried.
		loaded.forget(reflect.TypeFor[T](), e)
		return e.err
	}

	cfg, ok := e.value.(T)
	if !ok {
		return ErrInvalidConfigType
	}
	*v = cfg
	return nil
}

// MustLoad is Load that panics on error. Use it for configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: load %T: %v", *new(T), err))
	}
}

// LoadEnv reads the given .env files into the process environment. Values
// already set in the environment win; among files, the first one wins.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// ResetCache drops every cached configuration. Intended for tests.
func ResetCache() {
	loaded.mu.Lock()
	defer loaded.mu.Unlock()
	loaded.entries = make(map[reflect.Type]*entry)
}

func (r *registry) entry(t reflect.Type) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[t]
	if !ok {
		e = &entry{}
		r.entries[t] = e
	}
	return e
}

func (r *registry) forget(t reflect.Type, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries[t] == e {
		delete(r.entries, t)
	}
}
