package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBDriver string
	DBSource string
	SiteURL  string

	StripeSecretKey     string
	StripeWebhookSecret string

	AdminPassword string
	JWTSecret     string
	JWTTTL        time.Duration

	PickupBuffer time.Duration // เวลาเตรียมของก่อนนัดรับ
	PollInterval time.Duration // รอบ refetch ของ alert feed
	AlertWindow  time.Duration // recency window ของ order ที่ปลุกได้
	RingInterval time.Duration // จังหวะเสียงซ้ำตอน ringing
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8000"),
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBSource: getEnv("DB_SOURCE", "orders.db"),
		SiteURL:  getEnv("SITE_URL", "http://localhost:3000"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		AdminPassword: getEnv("ADMIN_PASSWORD", "changeme"),
		JWTSecret:     getEnv("JWT_SECRET", "changeme"),
		JWTTTL:        24 * time.Hour,

		PickupBuffer: minutesEnv("PICKUP_BUFFER_MINUTES", 20),
		PollInterval: secondsEnv("ALERT_POLL_SECONDS", 10),
		AlertWindow:  secondsEnv("ALERT_WINDOW_SECONDS", 10),
		RingInterval: secondsEnv("ALERT_RING_SECONDS", 5),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func minutesEnv(key string, fallback int) time.Duration {
	return time.Duration(intEnv(key, fallback)) * time.Minute
}

func secondsEnv(key string, fallback int) time.Duration {
	return time.Duration(intEnv(key, fallback)) * time.Second
}

func intEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: bad %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
