package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env         string
	Port        string
	DatabaseURL string // Postgres DSN; when empty the sqlite file is used
	SQLitePath  string
	RedisURL    string // optional; health traffic stats are skipped when unset
	UploadsDir  string

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string // optional bcrypt hash; takes precedence over AdminPassword
	AdminToken        string

	FrontendURLEndsWith string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "5000"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	sqlitePath := viper.GetString("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "atlas.db"
	}
	uploadsDir := viper.GetString("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}

	adminUser := viper.GetString("ADMIN_USERNAME")
	if adminUser == "" {
		adminUser = "admin"
	}
	adminPass := viper.GetString("ADMIN_PASSWORD")
	if adminPass == "" {
		adminPass = "atlas2026"
	}
	adminToken := viper.GetString("ADMIN_TOKEN")
	if adminToken == "" {
		adminToken = "fake-jwt-token-for-demo"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		SQLitePath:          sqlitePath,
		RedisURL:            viper.GetString("REDIS_URL"),
		UploadsDir:          uploadsDir,
		AdminUsername:       adminUser,
		AdminPassword:       adminPass,
		AdminPasswordHash:   viper.GetString("ADMIN_PASSWORD_HASH"),
		AdminToken:          adminToken,
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
	}, nil
}
