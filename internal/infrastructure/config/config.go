// Package config loads the service configuration from the environment.
//
// Variables use the SERVISKU_ prefix; the first underscore after the prefix
// separates the section from the key, e.g. SERVISKU_DYNAMODB_ENDPOINT maps to
// dynamodb.endpoint and SERVISKU_PAYMENTS_ACCESS_TOKEN to payments.access_token.
// A .env file in the working directory is loaded first when present.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SERVISKU_"

type Config struct {
	Server   ServerConfig   `koanf:"server" validate:"required"`
	AWS      AWSConfig      `koanf:"aws" validate:"required"`
	DynamoDB DynamoDBConfig `koanf:"dynamodb" validate:"required"`
	Redis    RedisConfig    `koanf:"redis" validate:"required"`
	Payments PaymentsConfig `koanf:"payments"`
	Log      LogConfig      `koanf:"log" validate:"required"`
}

type ServerConfig struct {
	Port     string `koanf:"port" validate:"required"`
	Env      string `koanf:"env" validate:"required,oneof=development staging production"`
	Currency string `koanf:"currency" validate:"required,len=3"`
	// MatchSeed fixes the technician matcher's random source; 0 seeds from the clock.
	MatchSeed uint64 `koanf:"match_seed"`
}

type AWSConfig struct {
	Region          string `koanf:"region" validate:"required"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
}

type DynamoDBConfig struct {
	// Endpoint points at DynamoDB Local; empty uses the AWS endpoint.
	Endpoint                string `koanf:"endpoint" validate:"omitempty,url"`
	ServiceRequestsTable    string `koanf:"service_requests_table" validate:"required"`
	MessagesTable           string `koanf:"messages_table" validate:"required"`
	BalanceEntriesTable     string `koanf:"balance_entries_table" validate:"required"`
	PaymentsTable           string `koanf:"payments_table" validate:"required"`
	TechnicianServicesTable string `koanf:"technician_services_table" validate:"required"`
}

type RedisConfig struct {
	Address  string `koanf:"address" validate:"required"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
	// PublishTimeoutSeconds bounds one fan-out publish.
	PublishTimeoutSeconds int `koanf:"publish_timeout_seconds" validate:"gte=1"`
}

type PaymentsConfig struct {
	AccessToken     string `koanf:"access_token" validate:"required_unless=Mock true"`
	Mock            bool   `koanf:"mock"`
	TestPayerEmail  string `koanf:"test_payer_email" validate:"omitempty,email"`
	TestPayerUserID string `koanf:"test_payer_user_id"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

var defaults = map[string]any{
	"server.port":                        "8080",
	"server.env":                         "development",
	"server.currency":                    "IDR",
	"aws.region":                         "us-east-1",
	"dynamodb.service_requests_table":    "service_requests",
	"dynamodb.messages_table":            "messages",
	"dynamodb.balance_entries_table":     "balance_entries",
	"dynamodb.payments_table":            "payments",
	"dynamodb.technician_services_table": "technician_services",
	"redis.address":                      "localhost:6379",
	"redis.db":                           0,
	"redis.publish_timeout_seconds":      5,
	"log.level":                          "info",
}

// EnvKey maps an environment variable name to its koanf key.
func EnvKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// Load reads defaults and environment overrides and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("config default %s: %w", key, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", EnvKey), nil); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}
