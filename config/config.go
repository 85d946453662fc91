package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Timers    TimerConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	Twilio    TwilioConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Bookings  BookingConfig
	Reminders ReminderConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AllowedOrigins []string
	// SlowRequest is the latency above which PerformanceLogger flags a request.
	SlowRequest time.Duration
}

// StoreConfig selects where the entity collections live. "memory" starts
// from the demo catalog; "postgres" loads from and mirrors to DatabaseURL.
type StoreConfig struct {
	Driver      string
	DatabaseURL string
}

// TimerConfig selects the KV driver holding the running service-order timers.
type TimerConfig struct {
	Driver string
	Path   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type RabbitMQConfig struct {
	URL string
}

type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
}

func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != ""
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// AuthConfig holds the bcrypt hashes of the shared back-office passwords.
// Empty hashes disable authentication.
type AuthConfig struct {
	AdminPasswordHash  string
	BarberPasswordHash string
}

func (a AuthConfig) Enabled() bool {
	return a.AdminPasswordHash != "" || a.BarberPasswordHash != ""
}

type BookingConfig struct {
	StatusPolicy string
	// SessionIdle is how long an unused intake session is kept.
	SessionIdle time.Duration
}

type ReminderConfig struct {
	Schedule string
	Template string
}

// Load reads .env when present, then the environment, falling back to the
// defaults below.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("slow_request_ms", 200)
	v.SetDefault("allowed_origins", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("store_driver", "memory")
	v.SetDefault("db_url", "")
	v.SetDefault("timer_storage_driver", "diskv")
	v.SetDefault("timer_storage_path", "./data/kv")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "barbershop")
	v.SetDefault("rabbitmq_url", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expiry_hours", 24)
	v.SetDefault("booking_status_policy", "permissive")
	v.SetDefault("intake_session_idle_minutes", 30)
	v.SetDefault("reminder_schedule", "0 9 * * *")

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("port"),
			GinMode:        v.GetString("gin_mode"),
			AllowedOrigins: splitList(v.GetString("allowed_origins")),
			SlowRequest:    time.Duration(v.GetInt("slow_request_ms")) * time.Millisecond,
		},
		Store: StoreConfig{
			Driver:      v.GetString("store_driver"),
			DatabaseURL: v.GetString("db_url"),
		},
		Timers: TimerConfig{
			Driver: v.GetString("timer_storage_driver"),
			Path:   v.GetString("timer_storage_path"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
			Prefix:   v.GetString("redis_prefix"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: v.GetString("rabbitmq_url"),
		},
		Twilio: TwilioConfig{
			AccountSID:     v.GetString("twilio_account_sid"),
			AuthToken:      v.GetString("twilio_auth_token"),
			PhoneNumber:    v.GetString("twilio_phone_number"),
			WhatsAppNumber: v.GetString("twilio_whatsapp_number"),
		},
		JWT: JWTConfig{
			Secret:          v.GetString("jwt_secret"),
			ExpirationHours: v.GetInt("jwt_expiry_hours"),
		},
		Auth: AuthConfig{
			AdminPasswordHash:  v.GetString("admin_password_hash"),
			BarberPasswordHash: v.GetString("barber_password_hash"),
		},
		Bookings: BookingConfig{
			StatusPolicy: v.GetString("booking_status_policy"),
			SessionIdle:  time.Duration(v.GetInt("intake_session_idle_minutes")) * time.Minute,
		},
		Reminders: ReminderConfig{
			Schedule: v.GetString("reminder_schedule"),
			Template: v.GetString("reminder_template"),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
