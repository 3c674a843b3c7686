package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option adjusts how Parse reads the environment.
type Option func(*options)

type options struct {
	prefix   string
	files    []string
	override map[string]string
}

// WithPrefix only considers variables starting with prefix; tags are written without it.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles reads dotenv files as a fallback layer. Variables already present
// in the process environment win over file values; later files win over earlier
// ones. The process environment itself is left untouched.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) { o.files = append(o.files, paths...) }
}

// WithValues sets variables that take precedence over every other source.
func WithValues(values map[string]string) Option {
	return func(o *options) {
		if o.override == nil {
			o.override = make(map[string]string, len(values))
		}
		maps.Copy(o.override, values)
	}
}

// Parse builds a T from the environment without caching.
func Parse[T any](opts ...Option) (T, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	environment, err := o.environment()
	if err != nil {
		var zero T
		return zero, err
	}

	cfg, err := env.ParseAsWithOptions[T](env.Options{
		Prefix:      o.prefix,
		Environment: environment,
	})
	if err != nil {
		var zero T
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

func (o options) environment() (map[string]string, error) {
	environment := make(map[string]string)
	for _, path := range o.files {
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", path, err))
		}
		maps.Copy(environment, values)
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environment[k] = v
		}
	}
	maps.Copy(environment, o.override)
	return environment, nil
}

// LoadEnv loads dotenv files into the process environment without overriding
// variables that are already set. With no paths it loads ./.env.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

var (
	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]any)

	defaultEnvLoaded sync.Once
)

// Load populates v from the environment once per configuration type and serves
// later calls for the same type from memory. The default .env file is read on the
// first call if it exists.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	cfg, err := Parse[T]()
	if err != nil {
		return err
	}
	cache[key] = cfg
	*v = cfg
	return nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Reload drops the cached value for T and parses it again.
func Reload[T any](v *T) error {
	cacheMu.Lock()
	delete(cache, reflect.TypeFor[T]())
	cacheMu.Unlock()
	return Load(v)
}

// ResetCache forgets every cached configuration.
func ResetCache() {
	cacheMu.Lock()
	clear(cache)
	cacheMu.Unlock()
}
