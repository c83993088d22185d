package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Analytics AnalyticsAPIConfig
	Dashboard DashboardConfig
	Cache     CacheConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Timezone string // zona IANA usada para resolver períodos ("hoje", "este_mes", ...)
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AnalyticsAPIConfig API REST externa de analítica (consultas, top produtos, referencias).
type AnalyticsAPIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Timeout devuelve el timeout de red del cliente HTTP.
func (c AnalyticsAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DashboardConfig parámetros de la carga secuenciada del dashboard.
// WidgetTimeoutSeconds = 0 desactiva el timeout por widget.
type DashboardConfig struct {
	WidgetTimeoutSeconds int
}

// WidgetTimeout devuelve el timeout por widget (0 = sin límite).
func (c DashboardConfig) WidgetTimeout() time.Duration {
	if c.WidgetTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.WidgetTimeoutSeconds) * time.Second
}

// CacheConfig caché Redis de datos de referencia.
// Si RedisAddr está vacío la caché queda deshabilitada y se consulta siempre la API.
type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTLMinutes    int
	RefreshCron   string // expresión cron para recalentar la caché; vacío = deshabilitado
}

// TTL devuelve la duración de las entradas en caché.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// Enabled indica si hay Redis configurado.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, ANALYTICS_API_URL, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "painel-vendas"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Timezone: getString(v, "DEFAULT_TIMEZONE", "America/Sao_Paulo"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Analytics: AnalyticsAPIConfig{
			BaseURL:        strings.TrimRight(getString(v, "ANALYTICS_API_URL", "http://127.0.0.1:8000"), "/"),
			TimeoutSeconds: getInt(v, "ANALYTICS_API_TIMEOUT_SECONDS", 30),
		},
		Dashboard: DashboardConfig{
			WidgetTimeoutSeconds: getInt(v, "DASHBOARD_WIDGET_TIMEOUT_SECONDS", 0),
		},
		Cache: CacheConfig{
			RedisAddr:     getString(v, "REDIS_ADDR", ""),
			RedisPassword: getString(v, "REDIS_PASSWORD", ""),
			RedisDB:       getInt(v, "REDIS_DB", 0),
			TTLMinutes:    getInt(v, "REFERENCE_CACHE_TTL_MINUTES", 10),
			RefreshCron:   getString(v, "REFERENCE_REFRESH_CRON", ""),
		},
	}

	if cfg.Analytics.BaseURL == "" {
		return nil, fmt.Errorf("config: ANALYTICS_API_URL vacío")
	}
	if cfg.Analytics.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("config: ANALYTICS_API_TIMEOUT_SECONDS debe ser positivo, recibido %d", cfg.Analytics.TimeoutSeconds)
	}
	if _, err := time.LoadLocation(cfg.App.Timezone); err != nil {
		return nil, fmt.Errorf("config: DEFAULT_TIMEZONE %q: %w", cfg.App.Timezone, err)
	}

	return cfg, nil
}

// Location devuelve la zona horaria configurada; UTC si no se puede cargar.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
