package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr    string `env:"HTTP_ADDR" env-default:":8000"`
	BaseURL string `env:"BASE_URL" env-default:"http://localhost:8000"`
}

type Mongo struct {
	URI      string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DB" env-default:"brelis"`
}

type JWT struct {
	Secret string        `env:"JWT_SECRET" env-required:"true"`
	TTL    time.Duration `env:"JWT_TTL" env-default:"24h"`
}

type SendGrid struct {
	APIKey    string `env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `env:"EMAIL_FROM" env-default:"no-reply@brelis.in"`
	FromName  string `env:"EMAIL_FROM_NAME" env-default:"BRELIS Streetwear"`
}

type Upload struct {
	Dir      string `env:"UPLOAD_DIR" env-default:"uploads"`
	MaxBytes int64  `env:"UPLOAD_MAX_BYTES" env-default:"10485760"`
}

type Config struct {
	Env        string `env:"ENV" env-default:"development"`
	HTTPServer HTTPServer
	Mongo      Mongo
	JWT        JWT
	SendGrid   SendGrid
	Upload     Upload
}

// MustLoad reads configuration from the environment and exits on failure.
func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("can not read config: %s", err.Error())
	}
	return &cfg
}
