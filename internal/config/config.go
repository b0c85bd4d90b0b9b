package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTTTL    time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	S3Endpoint string
	S3Bucket   string

	CORSOrigins []string
}

// Load 读取 .env（若存在）和环境变量
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env vars")
	}

	return &Config{
		Port:          getenv("PORT", "8080"),
		DatabaseDSN:   getenv("DATABASE_DSN", "root:root@tcp(127.0.0.1:3306)/barhub?charset=utf8mb4&parseTime=True"),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),
		JWTSecret:     getenv("JWT_SECRET", "secret-key-change-me"),
		JWTTTL:        time.Duration(getint("JWT_TTL_MINUTES", 60*24*7)) * time.Minute,
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    getenv("KAFKA_TOPIC", "barhub.admin.actions"),
		S3Endpoint:    getenv("S3_ENDPOINT", "http://localhost:9000"),
		S3Bucket:      getenv("S3_BUCKET", "barhub"),
		CORSOrigins:   splitList(getenv("CORS_ORIGINS", "*")),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
