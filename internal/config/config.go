package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDriver       string
	DBDSN          string
	LogFile        string
	JWTSecret      string
	TokenTTL       time.Duration
	PasswordScheme string
	AMQPURL        string
	OrderQueue     string
	SeedDemo       bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using environment")
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		log.Printf("[warn] bad TOKEN_TTL, using 24h: %v", err)
		ttl = 24 * time.Hour
	}
	seed, _ := strconv.ParseBool(getEnv("SEED_DEMO", "true"))

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBDSN:          getEnv("DB_DSN", "storefront.db"), // sqlite file in project root
		LogFile:        getEnv("LOG_FILE", "./storefront.log"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		TokenTTL:       ttl,
		PasswordScheme: getEnv("PASSWORD_SCHEME", "bcrypt"),
		AMQPURL:        os.Getenv("AMQP_URL"), // empty disables order events
		OrderQueue:     getEnv("ORDER_QUEUE", "orders.placed"),
		SeedDemo:       seed,
	}
	log.Printf("[config] PORT=%s DB_DRIVER=%s DB_DSN=%s LOG_FILE=%s PASSWORD_SCHEME=%s TOKEN_TTL=%s AMQP=%t SEED_DEMO=%t",
		cfg.Port, cfg.DBDriver, mask(cfg.DBDriver, cfg.DBDSN), cfg.LogFile, cfg.PasswordScheme, cfg.TokenTTL, cfg.AMQPURL != "", cfg.SeedDemo)
	if cfg.JWTSecret == "change-me" {
		log.Println("[warn] JWT_SECRET not set; using the development default")
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// mask hides postgres DSNs, which usually embed a password.
func mask(driver, dsn string) string {
	if driver == "sqlite" {
		return dsn
	}
	return "***"
}
