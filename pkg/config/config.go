package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Backend BackendConfig
	Access  AccessConfig
	Redis   RedisConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host     string
	Port     int
	DocsPath string // documento Swagger servido en /docs; vacío lo deshabilita
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración del token de sesión de la consola.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// TTL duración de la sesión.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.Expiration) * time.Minute
}

// BackendConfig ubicación y rutas del API REST de inventario.
// Las rutas son configuración, no parte del contrato de la consola.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
	Routes  BackendRoutes
}

// BackendRoutes rutas relativas a BaseURL.
type BackendRoutes struct {
	Login          string
	Logout         string
	Me             string
	Products       string
	Customers      string
	Suppliers      string
	Sales          string
	Purchases      string
	Users          string
	DashboardStats string
	LowStock       string
}

// AccessConfig tabla de permisos por rol.
// Si TablePath está vacío se usa la tabla embebida.
type AccessConfig struct {
	TablePath   string
	DefaultRole string
}

// RedisConfig almacenamiento de sesiones. Addr vacío = memoria del proceso.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_BASE_URL, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "consola-inventario"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:     getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:     getInt(v, "HTTP_PORT", 8081),
			DocsPath: getString(v, "HTTP_DOCS_PATH", "./docs/swagger.json"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "consola-inventario"),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(getString(v, "BACKEND_BASE_URL", "http://localhost:5000/api"), "/"),
			Timeout: time.Duration(getInt(v, "BACKEND_TIMEOUT_SECONDS", 15)) * time.Second,
			Routes: BackendRoutes{
				Login:          getString(v, "BACKEND_ROUTE_LOGIN", "/auth/login"),
				Logout:         getString(v, "BACKEND_ROUTE_LOGOUT", "/auth/logout"),
				Me:             getString(v, "BACKEND_ROUTE_ME", "/auth/me"),
				Products:       getString(v, "BACKEND_ROUTE_PRODUCTS", "/products"),
				Customers:      getString(v, "BACKEND_ROUTE_CUSTOMERS", "/customers"),
				Suppliers:      getString(v, "BACKEND_ROUTE_SUPPLIERS", "/providers"),
				Sales:          getString(v, "BACKEND_ROUTE_SALES", "/sales"),
				Purchases:      getString(v, "BACKEND_ROUTE_PURCHASES", "/purchases"),
				Users:          getString(v, "BACKEND_ROUTE_USERS", "/users"),
				DashboardStats: getString(v, "BACKEND_ROUTE_DASHBOARD_STATS", "/dashboard/stats"),
				LowStock:       getString(v, "BACKEND_ROUTE_LOW_STOCK", "/dashboard/low-stock"),
			},
		},
		Access: AccessConfig{
			TablePath:   getString(v, "ACCESS_TABLE_PATH", ""),
			DefaultRole: getString(v, "ACCESS_DEFAULT_ROLE", ""),
		},
		Redis: RedisConfig{
			Addr:      getString(v, "REDIS_ADDR", ""),
			Password:  getString(v, "REDIS_PASSWORD", ""),
			DB:        getInt(v, "REDIS_DB", 0),
			KeyPrefix: getString(v, "REDIS_KEY_PREFIX", "consola:session:"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	if cfg.JWT.Expiration <= 0 {
		return nil, fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	return cfg, nil
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
			n, err := strconv.Atoi(v.GetString(key))
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
