package config

import (
	"log"
	"strings"
	"time"

	"lodge-backend/utils"

	"github.com/joho/godotenv"
)

// Config is everything the process reads from the environment.
type Config struct {
	Port        string
	DBDriver    string // mysql | postgres | sqlite
	DatabaseURL string
	SQLitePath  string
	LogSQL      bool

	CORSOrigins []string
	UploadDir   string
	TimeZone    string

	LodgeName          string
	DefaultNationality string

	SMSAPIURL   string
	SMSToken    string
	SMSSenderID string
	AdminPhone  string
	SMSTimeout  time.Duration

	NATSURL string
}

// Load reads .env (optional) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg := Config{
		Port:        utils.EnvOrDefault("PORT", "8080"),
		DBDriver:    strings.ToLower(utils.EnvOrDefault("DB_DRIVER", "mysql")),
		DatabaseURL: utils.EnvOrDefault("MYSQL_URL", utils.EnvOrDefault("DATABASE_URL", "")),
		SQLitePath:  utils.EnvOrDefault("SQLITE_PATH", "lodge.db"),
		LogSQL:      utils.EnvBool("LOG_SQL", false),

		CORSOrigins: utils.SplitCSV(utils.EnvOrDefault("CORS_ORIGINS", "*")),
		UploadDir:   utils.EnvOrDefault("UPLOAD_DIR", "uploads"),
		TimeZone:    utils.EnvOrDefault("TIME_ZONE", "Africa/Dar_es_Salaam"),

		LodgeName:          utils.EnvOrDefault("LODGE_NAME", "Kili Lodge"),
		DefaultNationality: utils.EnvOrDefault("DEFAULT_NATIONALITY", "Tanzania"),

		SMSAPIURL:   utils.EnvOrDefault("SMS_API_URL", ""),
		SMSToken:    utils.EnvOrDefault("SMS_TOKEN", ""),
		SMSSenderID: utils.EnvOrDefault("SMS_SENDER_ID", ""),
		AdminPhone:  utils.EnvOrDefault("ADMIN_PHONE", ""),
		SMSTimeout:  time.Duration(utils.EnvInt("SMS_TIMEOUT_SECONDS", 30)) * time.Second,

		NATSURL: utils.EnvOrDefault("NATS_URL", ""),
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	return cfg
}
