package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server         Server         `toml:"server"`
	Database       Database       `toml:"database"`
	Logs           Logs           `toml:"logs"`
	Metrics        Metrics        `toml:"metrics"`
	CatalogService CatalogService `toml:"catalog_service"`
	NotifyService  NotifyService  `toml:"notify_service"`
	Booking        Booking        `toml:"booking"`
	Reaper         Reaper         `toml:"reaper"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к PostgreSQL
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к БД
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// CatalogService настройки клиента каталога услуг и центров
type CatalogService struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// NotifyService настройки клиента сервиса уведомлений
type NotifyService struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Booking бизнес-параметры бронирования и ценообразования
type Booking struct {
	HomeServiceCharge   float64 `toml:"home_service_charge"`
	TaxRate             float64 `toml:"tax_rate"`
	DefaultUrgentFee    float64 `toml:"default_urgent_fee"`
	SlotOpenTime        string  `toml:"slot_open_time"`
	SlotCloseTime       string  `toml:"slot_close_time"`
	SlotDurationMinutes int     `toml:"slot_duration_minutes"`
	DefaultSlotCapacity int     `toml:"default_slot_capacity"`
}

// Reaper настройки фоновой отмены неоплаченных pending-бронирований
type Reaper struct {
	Enabled    bool   `toml:"enabled"`
	Schedule   string `toml:"schedule"` // cron-выражение, например "*/10 * * * *"
	TTLMinutes int    `toml:"ttl_minutes"`
}

// Load загружает конфигурацию из TOML файла и применяет дефолты
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Booking.HomeServiceCharge == 0 {
		c.Booking.HomeServiceCharge = domain.DefaultHomeServiceCharge
	}
	if c.Booking.TaxRate == 0 {
		c.Booking.TaxRate = domain.DefaultTaxRate
	}
	if c.Booking.DefaultUrgentFee == 0 {
		c.Booking.DefaultUrgentFee = domain.DefaultUrgentFee
	}
	if c.Booking.SlotOpenTime == "" {
		c.Booking.SlotOpenTime = domain.DefaultSlotOpenTime
	}
	if c.Booking.SlotCloseTime == "" {
		c.Booking.SlotCloseTime = domain.DefaultSlotCloseTime
	}
	if c.Booking.SlotDurationMinutes == 0 {
		c.Booking.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if c.Booking.DefaultSlotCapacity == 0 {
		c.Booking.DefaultSlotCapacity = domain.DefaultSlotCapacity
	}
	if c.Reaper.TTLMinutes == 0 {
		c.Reaper.TTLMinutes = domain.DefaultPendingTTLMin
	}
	if c.Reaper.Schedule == "" {
		c.Reaper.Schedule = "*/10 * * * *"
	}
}
