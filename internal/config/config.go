// Package config reads service configuration from the environment, after
// loading a .env file when one is present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAuthPort        = 3000
	DefaultAssessmentPort  = 3002
	DefaultAccessTTL       = 15 * time.Minute
	DefaultRefreshTTL      = 7 * 24 * time.Hour
	DefaultBcryptCost      = 12
	DefaultShutdownTimeout = 30 * time.Second
)

var (
	ErrMissingEnv = errors.New("missing required environment variable")
	ErrInvalidEnv = errors.New("invalid environment variable")
)

// Server holds the settings shared by both services.
type Server struct {
	DatabaseURL     string
	Port            int
	LogFormat       string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Addr is the listen address for the configured port.
func (s Server) Addr() string {
	return net.JoinHostPort("0.0.0.0", strconv.Itoa(s.Port))
}

type Auth struct {
	Server
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	BcryptCost    int
}

type Assessment struct {
	Server
	JWTPublicKey string
	JWTSecret    string
}

// LoadDotEnv loads the given files (".env" when none are given). A missing
// file is not an error; variables already set in the environment win.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

func LoadAuth() (*Auth, error) {
	server, err := loadServer(DefaultAuthPort)
	if err != nil {
		return nil, err
	}

	cfg := &Auth{Server: *server}

	if cfg.AccessSecret, err = required("JWT_ACCESS_SECRET"); err != nil {
		return nil, err
	}
	if cfg.RefreshSecret, err = required("JWT_REFRESH_SECRET"); err != nil {
		return nil, err
	}
	if cfg.AccessTTL, err = durationEnv("JWT_ACCESS_EXPIRES_IN", DefaultAccessTTL); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = durationEnv("JWT_REFRESH_EXPIRES_IN", DefaultRefreshTTL); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = intEnv("BCRYPT_COST", DefaultBcryptCost); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadAssessment requires AUTH_JWT_PUBLIC_KEY or AUTH_JWT_SECRET. Escaped
// newlines in the public key are expanded so a PEM fits on one env line.
func LoadAssessment() (*Assessment, error) {
	server, err := loadServer(DefaultAssessmentPort)
	if err != nil {
		return nil, err
	}

	cfg := &Assessment{
		Server:       *server,
		JWTPublicKey: strings.ReplaceAll(os.Getenv("AUTH_JWT_PUBLIC_KEY"), `\n`, "\n"),
		JWTSecret:    os.Getenv("AUTH_JWT_SECRET"),
	}
	if cfg.JWTPublicKey == "" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: AUTH_JWT_PUBLIC_KEY or AUTH_JWT_SECRET", ErrMissingEnv)
	}

	return cfg, nil
}

func loadServer(defaultPort int) (*Server, error) {
	dsn, err := databaseURL()
	if err != nil {
		return nil, err
	}

	port, err := intEnv("PORT", defaultPort)
	if err != nil {
		return nil, err
	}

	shutdown, err := durationEnv("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	return &Server{
		DatabaseURL:     dsn,
		Port:            port,
		LogFormat:       os.Getenv("LOG_FORMAT"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		ShutdownTimeout: shutdown,
	}, nil
}

// databaseURL prefers DATABASE_URL and otherwise assembles a DSN from the
// POSTGRES_* variables.
func databaseURL() (string, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn, nil
	}

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		return "", fmt.Errorf("%w: DATABASE_URL", ErrMissingEnv)
	}

	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		host,
		port,
		os.Getenv("POSTGRES_DB"),
	), nil
}

func required(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, name)
	}
	return v, nil
}

func intEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidEnv, name, v)
	}
	return n, nil
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	d, err := ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidEnv, name, v)
	}
	return d, nil
}

// ParseDuration accepts time.ParseDuration syntax plus a whole number of
// days such as "7d".
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid day duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}
