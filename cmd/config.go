package cmd

import (
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string

	// KafkaBrokers is a comma-separated seed list. Empty disables alert publishing.
	KafkaBrokers    string
	KafkaAlertTopic string
	KafkaClientID   string

	// OrderIDScheme is "period" (default) or "year_month".
	OrderIDScheme string
	// BaseDate anchors the period scheme, YYYY-MM-DD. Empty keeps the default anchor.
	BaseDate string

	PlantConfigPath   string
	Timezone          string
	LogLevel          string
	SchedulingSpec    string
	HealthMonitorSpec string
	SchedulerLockTTL  string
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Location is the plant time zone that defines "today". Empty means UTC.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// ParsedBaseDate returns the configured period anchor or the zero Date.
func (c Config) ParsedBaseDate() (kernel.Date, error) {
	if strings.TrimSpace(c.BaseDate) == "" {
		return kernel.Date{}, nil
	}
	return kernel.ParseDate(strings.TrimSpace(c.BaseDate))
}

// LockTTL parses SchedulerLockTTL. Empty yields 0, the handler default.
func (c Config) LockTTL() (time.Duration, error) {
	if strings.TrimSpace(c.SchedulerLockTTL) == "" {
		return 0, nil
	}
	return time.ParseDuration(c.SchedulerLockTTL)
}

// Brokers splits KafkaBrokers.
func (c Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
