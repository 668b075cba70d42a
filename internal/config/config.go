package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort           string
	AppBaseURL        string
	DBDSN             string
	JWTSecret         string
	JWTExpiresMin     int
	RefreshExpiresMin int
	AdminAPIKey       string
	RedisAddr         string
	UploadDir         string
}

func Load() Config {
	expires, _ := strconv.Atoi(get("JWT_EXPIRES_MIN", "60"))
	refresh, _ := strconv.Atoi(get("JWT_REFRESH_EXPIRES_MIN", "10080"))
	return Config{
		AppPort:           get("APP_PORT", "8080"),
		AppBaseURL:        get("APP_BASE_URL", ""),
		DBDSN:             must("DB_DSN"),
		JWTSecret:         must("JWT_SECRET"),
		JWTExpiresMin:     expires,
		RefreshExpiresMin: refresh,
		AdminAPIKey:       must("ADMIN_API_KEY"),
		RedisAddr:         get("REDIS_ADDR", ""),
		UploadDir:         get("UPLOAD_DIR", "./uploads"),
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
