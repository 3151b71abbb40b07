package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// demoAdminPassword is hashed at startup when ADMIN_PASSWORD_HASH is unset.
const demoAdminPassword = "password123"

type Config struct {
	Port    string
	DBDSN   string
	LogFile string

	AdminUsername     string
	AdminPasswordHash string
	TaxRate           decimal.Decimal

	SessionIdle time.Duration
}

func Load() Config {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(".env"); err == nil {
		log.Printf("[config] loaded .env")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DSN", ":memory:") // process memory only; gone on exit
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("TAX_RATE", "0.05")
	v.SetDefault("SESSION_IDLE", "2h")

	rate, err := decimal.NewFromString(v.GetString("TAX_RATE"))
	if err != nil || rate.IsNegative() {
		log.Printf("[config] invalid TAX_RATE %q, using 0.05", v.GetString("TAX_RATE"))
		rate = decimal.RequireFromString("0.05")
	}

	hash := v.GetString("ADMIN_PASSWORD_HASH")
	if hash == "" {
		h, err := bcrypt.GenerateFromPassword([]byte(demoAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[config] hash demo admin password: %v", err)
		}
		hash = string(h)
		log.Printf("[config] ADMIN_PASSWORD_HASH not set, using the demo password")
	}

	cfg := Config{
		Port:              v.GetString("PORT"),
		DBDSN:             v.GetString("DB_DSN"),
		LogFile:           v.GetString("LOG_FILE"),
		AdminUsername:     v.GetString("ADMIN_USERNAME"),
		AdminPasswordHash: hash,
		TaxRate:           rate,
		SessionIdle:       v.GetDuration("SESSION_IDLE"),
	}
	if cfg.SessionIdle <= 0 {
		log.Printf("[config] invalid SESSION_IDLE %q, using 2h", v.GetString("SESSION_IDLE"))
		cfg.SessionIdle = 2 * time.Hour
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s ADMIN_USERNAME=%s TAX_RATE=%s SESSION_IDLE=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.AdminUsername, cfg.TaxRate, cfg.SessionIdle)
	return cfg
}

// ForTest returns a config with a known admin password and the default rate,
// hashed at the minimum bcrypt cost.
func ForTest(username, password string) Config {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return Config{
		Port:              "0",
		DBDSN:             ":memory:",
		AdminUsername:     username,
		AdminPasswordHash: string(h),
		TaxRate:           decimal.RequireFromString("0.05"),
	}
}
