package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBDSN    string
	MediaDir string
	LogFile  string
	// Admin client settings (pcforge-admin)
	APIURL        string
	AdminEmail    string
	AdminPassword string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the environment, after loading an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:          getenv("PORT", "8081"),
		DBDSN:         getenv("DB_DSN", "pcforge.db"), // sqlite file in project root
		MediaDir:      getenv("MEDIA_DIR", "./web/media"),
		LogFile:       getenv("LOG_FILE", "./pcforge.log"),
		APIURL:        getenv("API_URL", "http://localhost:8081"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile)
	return cfg
}
