package config

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Configuration struct {
	Logs           LogsSettings         `mapstructure:"logs"`
	App            Application          `mapstructure:"app"`
	Database       Database             `mapstructure:"database"`
	Queue          QueueConfig          `mapstructure:"queue"`
	Redis          Redis                `mapstructure:"redis"`
	Server         ServerSettings       `mapstructure:"server"`
	Chat           ChatSettings         `mapstructure:"chat"`
	DocumentServer DocumentServerConfig `mapstructure:"document-server"`
	Cryptography   CryptographyConfig   `mapstructure:"cryptography"`
	Session        SessionConfig        `mapstructure:"session"`
}

type LogsSettings struct {
	Level            string `mapstructure:"level"`
	Path             string `mapstructure:"log-path"`
	EnableJSONOutput bool   `mapstructure:"enable-json-output"`
}

type Application struct {
	Name        string `mapstructure:"name"`
	Timeout     int    `mapstructure:"timeout"`
	Version     string `mapstructure:"version"`
	BaseAddress string `mapstructure:"base-address"`
}

type Database struct {
	Url                   string `mapstructure:"url"`
	DbName                string `mapstructure:"dbname"`
	SessionCollection     string `mapstructure:"session-collection"`
	SettingsCollection    string `mapstructure:"settings-collection"`
	CredentialsCollection string `mapstructure:"credentials-collection"`
	Timeout               int    `mapstructure:"timeout"`
}

type QueueConfig struct {
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

type RabbitMQConfig struct {
	Url            string `mapstructure:"url"`
	Exchange       string `mapstructure:"exchange"`
	ExchangeType   string `mapstructure:"exchange-type"`
	DocumentQueue  string `mapstructure:"document-queue"`
	RoutingKey     string `mapstructure:"routing-key"`
	ReconnectDelay int    `mapstructure:"reconnect-delay"`
	Timeout        int    `mapstructure:"timeout"`
	Durable        bool   `mapstructure:"durable"`
	AutoDelete     bool   `mapstructure:"auto-delete"`
	Internal       bool   `mapstructure:"internal"`
	NoWait         bool   `mapstructure:"no-wait"`
}

type Redis struct {
	Url      string `mapstructure:"url"`
	Password string `mapstructure:"password"`
	Db       int    `mapstructure:"db"`
}

type ServerSettings struct {
	Port         string `mapstructure:"port"`
	Mode         string `mapstructure:"mode"`
	ReadTimeout  int    `mapstructure:"read-timeout"`
	WriteTimeout int    `mapstructure:"write-timeout"`
	IdleTimeout  int    `mapstructure:"idle-timeout"`
}

type ChatSettings struct {
	ApiUrl  string `mapstructure:"api-url"`
	Timeout int    `mapstructure:"timeout"`
}

type DocumentServerConfig struct {
	Jwt  JwtConfig  `mapstructure:"jwt"`
	Demo DemoConfig `mapstructure:"demo"`
}

type JwtConfig struct {
	KeepAliveMinutes        int `mapstructure:"keep-alive-minutes"`
	AcceptableLeewaySeconds int `mapstructure:"acceptable-leeway-seconds"`
}

type DemoConfig struct {
	Address      string `mapstructure:"address"`
	Header       string `mapstructure:"header"`
	Secret       string `mapstructure:"secret"`
	DurationDays int    `mapstructure:"duration-days"`
}

type CryptographyConfig struct {
	Secret string `mapstructure:"secret"`
}

type SessionConfig struct {
	HandoffTTLMinutes    int `mapstructure:"handoff-ttl-minutes"`
	SweepIntervalMinutes int `mapstructure:"sweep-interval-minutes"`
	RetentionDays        int `mapstructure:"retention-days"`
	SweepBatchSize       int `mapstructure:"sweep-batch-size"`
	DownloadTimeout      int `mapstructure:"download-timeout"`
	ValidationRetries    int `mapstructure:"validation-retries"`
	ValidationRetryDelay int `mapstructure:"validation-retry-delay"`
}

func Load() *Configuration {
	cfg := read()
	logrus.Info("Configuration loaded")

	// Override with environment variables
	mongoUri := os.Getenv("MONGODB_URL")
	if mongoUri != "" {
		cfg.Database.Url = mongoUri
	}

	dbName := os.Getenv("DB_NAME")
	if dbName != "" {
		cfg.Database.DbName = dbName
	}

	redisUrl := os.Getenv("REDIS_URL")
	if redisUrl != "" {
		cfg.Redis.Url = redisUrl
	}

	redisDB := os.Getenv("REDIS_DB")
	if redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			cfg.Redis.Db = db
		}
	}

	rabbitmqUrl := os.Getenv("RABBITMQ_URL")
	if rabbitmqUrl != "" {
		cfg.Queue.RabbitMQ.Url = rabbitmqUrl
	}

	cryptoSecret := os.Getenv("CRYPTOGRAPHY_SECRET")
	if cryptoSecret != "" {
		cfg.Cryptography.Secret = cryptoSecret
	}

	baseAddress := os.Getenv("BASE_ADDRESS")
	if baseAddress != "" {
		cfg.App.BaseAddress = baseAddress
	}

	chatApiUrl := os.Getenv("CHAT_API_URL")
	if chatApiUrl != "" {
		cfg.Chat.ApiUrl = chatApiUrl
	}

	return cfg
}

func read() *Configuration {
	viper.SetConfigFile("src/internal/config/cfg.yml")
	viper.AutomaticEnv()
	viper.SetConfigType("yml")

	var config Configuration

	err := viper.ReadInConfig()
	if err != nil {
		logrus.Panicf("Error reading config file, %s", err)
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		logrus.Panicf("Error unmarshalling config file, %s", err)
	}

	return &config
}
