package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type JWTConfig struct {
	SecretKey       string        `mapstructure:"secretKey"`
	AccessTokenTTL  time.Duration `mapstructure:"accessTokenTTL"`
	RefreshTokenTTL time.Duration `mapstructure:"refreshTokenTTL"`
	Issuer          string        `mapstructure:"issuer"`
	Audience        string        `mapstructure:"audience"`
}

// GoogleConfig configures the Maps web services client.
type GoogleConfig struct {
	APIKey         string        `mapstructure:"apiKey"`
	BaseURL        string        `mapstructure:"baseURL"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
	RetryCount     int           `mapstructure:"retryCount"`
	RetryWait      time.Duration `mapstructure:"retryWait"`
	RetryMaxWait   time.Duration `mapstructure:"retryMaxWait"`
	RatePerSecond  float64       `mapstructure:"ratePerSecond"`
	RateBurst      int           `mapstructure:"rateBurst"`
}

type ItineraryConfig struct {
	MaxVenues       int           `mapstructure:"maxVenues"`
	DefaultRadius   float64       `mapstructure:"defaultRadius"`
	DefaultMode     string        `mapstructure:"defaultMode"`
	Concurrency     int           `mapstructure:"concurrency"`
	BuildTimeout    time.Duration `mapstructure:"buildTimeout"`
	StartHour       int           `mapstructure:"startHour"`
	VisitMinutes    int           `mapstructure:"visitMinutes"`
	TravelMinutes   int           `mapstructure:"travelMinutes"`
	MaxPhotos       int           `mapstructure:"maxPhotos"`
	PhotoMaxWidth   int           `mapstructure:"photoMaxWidth"`
	DetailsCacheTTL time.Duration `mapstructure:"detailsCacheTTL"`
	SearchCacheTTL  time.Duration `mapstructure:"searchCacheTTL"`
}

type Config struct {
	Mode         string `mapstructure:"mode"`
	Dotenv       string `mapstructure:"dotenv"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
			MaxConns          int32  `mapstructure:"maxConns"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Observability struct {
		ServiceName    string `mapstructure:"serviceName"`
		PrometheusPort string `mapstructure:"prometheusPort"`
	} `mapstructure:"observability"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Google    GoogleConfig    `mapstructure:"google"`
	Itinerary ItineraryConfig `mapstructure:"itinerary"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/usr/local/bin")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// GOOGLE_APIKEY overrides google.apiKey, JWT_SECRETKEY overrides jwt.secretKey, etc.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

// Validate fills zero values with defaults and rejects settings the services cannot run with.
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secretKey must be set")
	}
	if c.JWT.AccessTokenTTL <= 0 {
		c.JWT.AccessTokenTTL = 15 * time.Minute
	}
	if c.JWT.RefreshTokenTTL <= 0 {
		c.JWT.RefreshTokenTTL = 7 * 24 * time.Hour
	}
	if c.Google.BaseURL == "" {
		c.Google.BaseURL = "https://maps.googleapis.com/maps/api"
	}

	it := &c.Itinerary
	if it.MaxVenues <= 0 {
		it.MaxVenues = 8
	}
	if it.DefaultRadius <= 0 {
		it.DefaultRadius = 5000
	}
	if it.DefaultMode == "" {
		it.DefaultMode = "walk"
	}
	if it.Concurrency <= 0 {
		it.Concurrency = 4
	}
	if it.StartHour < 0 || it.StartHour > 23 {
		return fmt.Errorf("itinerary.startHour must be within 0-23, got %d", it.StartHour)
	}
	if it.VisitMinutes <= 0 {
		it.VisitMinutes = 60
	}
	if it.TravelMinutes < 0 {
		return fmt.Errorf("itinerary.travelMinutes must not be negative")
	}
	if it.MaxPhotos <= 0 {
		it.MaxPhotos = 5
	}
	if it.PhotoMaxWidth <= 0 {
		it.PhotoMaxWidth = 800
	}
	return nil
}
