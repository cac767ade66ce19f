package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort               string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL            string `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns             int    `env:"DB_MAX_CONNS" envDefault:"10"`
	AutoMigrate            bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	JWTSecret              string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes    int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`
	JWTRefreshTTLMinutes   int    `env:"JWT_REFRESH_TTL_MINUTES" envDefault:"43200"`
	RedisAddr              string `env:"REDIS_ADDR"`
	RedisPassword          string `env:"REDIS_PASSWORD"`
	RedisDB                int    `env:"REDIS_DB" envDefault:"0"`
	LoginRateWindowMinutes int    `env:"LOGIN_RATE_WINDOW_MINUTES" envDefault:"10"`
	LoginRateMax           int    `env:"LOGIN_RATE_MAX" envDefault:"5"`
	QuizSessionTTLMinutes  int    `env:"QUIZ_SESSION_TTL_MINUTES" envDefault:"1440"`
	HistoryDefaultLimit    int    `env:"HISTORY_DEFAULT_LIMIT" envDefault:"20"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
