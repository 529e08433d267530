package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBDSN           string
	LogFile         string
	ExpiryAlertDays int
	LowStockLevel   int

	// Read at start for parity with the deployment environment; no
	// mailer or scheduler is wired to them.
	SMTPHost       string
	SMTPUser       string
	SMTPPass       string
	CronExpression string
	PublicAppURL   string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("[config] DB_DSN is required")
	}
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{
		Port:            port,
		DBDSN:           dsn,
		LogFile:         logFile,
		ExpiryAlertDays: intEnv("EXPIRY_ALERT_DAYS", 40),
		LowStockLevel:   intEnv("LOW_STOCK_THRESHOLD", 10),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPass:        os.Getenv("SMTP_PASS"),
		CronExpression:  os.Getenv("CRON_EXPRESSION"),
		PublicAppURL:    os.Getenv("PUBLIC_APP_URL"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s EXPIRY_ALERT_DAYS=%d LOW_STOCK_THRESHOLD=%d",
		cfg.Port, cfg.DBDSN, cfg.ExpiryAlertDays, cfg.LowStockLevel)
	return cfg
}

func intEnv(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("[config] invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}
