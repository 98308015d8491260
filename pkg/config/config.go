package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	RedisAddr  = "REDIS_ADDR"
	ConsulAddr = "CONSUL_ADDR"
)

// InitConfig loads variables from the given .env files, or ./.env when none
// are given. A missing file is not an error; the process environment is used.
func InitConfig(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("⚠️ No .env file loaded, using process environment")
		return
	}
	log.Println("✅ Loaded environment variables")
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}
	return b, nil
}

// Getenv returns the value of key, or fallback when it is unset or empty.
func Getenv(key, fallback string) string {
	if v, err := GetEnvVariable(key); err == nil {
		return v
	}
	return fallback
}

// GetenvFloat parses key as a float64. Malformed values are logged and the
// fallback is used.
func GetenvFloat(key string, fallback float64) float64 {
	v, err := GetEnvVariable(key)
	if err != nil {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("⚠️ Ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return f
}
