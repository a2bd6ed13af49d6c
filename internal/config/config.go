package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Env identifica el entorno de ejecución.
type Env string

const (
	EnvDevelopment Env = "development"
	EnvProduction  Env = "production"
)

// Config agrupa toda la configuración de la aplicación.
// Todo sale de variables de entorno, con defaults por entorno (APP_ENV).
type Config struct {
	Env  Env
	Port string

	DatabaseDSN    string
	MigrateOnStart bool

	JWTSecret       string
	JWTCookieDomain string
	JWTCookieSecure bool
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	CORSOrigins []string

	CacheTTL  time.Duration
	RedisAddr string // vacío => caché en memoria
}

// Load lee la configuración desde el entorno.
func Load() Config {
	env := EnvDevelopment
	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		env = EnvProduction
	}

	cfg := Config{
		Env:  env,
		Port: getEnv("PORT", "8080"),

		DatabaseDSN:    os.Getenv("DB_DSN"),
		MigrateOnStart: getBool("MIGRATE_ON_START", env == EnvDevelopment),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTCookieDomain: os.Getenv("JWT_COOKIE_DOMAIN"),
		JWTCookieSecure: getBool("JWT_COOKIE_SECURE", env == EnvProduction),
		AccessTokenTTL:  getDuration("JWT_ACCESS_TTL", time.Hour),
		RefreshTokenTTL: getDuration("JWT_REFRESH_TTL", 30*24*time.Hour),

		CacheTTL:  getDuration("CACHE_TTL", 5*time.Minute),
		RedisAddr: os.Getenv("REDIS_ADDR"),
	}

	// En desarrollo aceptamos un secret por defecto; en producción debe venir del entorno.
	if cfg.JWTSecret == "" && env == EnvDevelopment {
		cfg.JWTSecret = "dev-secret-do-not-use"
	}

	origins := getEnv("CORS_ORIGINS", defaultOrigins(env))
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg
}

func defaultOrigins(env Env) string {
	if env == EnvProduction {
		return ""
	}
	return "http://localhost:3000,http://localhost:5173"
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	// Admite "300" (segundos) o notación Go ("5m").
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
