package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo .env).
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	JWT  JWTConfig
	Auth AuthConfig
	Runs RunsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	MaxUploadMB int // límite del cuerpo multipart (los tres xlsx juntos)
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BodyLimit devuelve el límite de cuerpo en bytes para Fiber.
func (c HTTPConfig) BodyLimit() int {
	return c.MaxUploadMB * 1024 * 1024
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AuthConfig credencial del operador que puede ejecutar corridas.
// No hay tabla de usuarios: la herramienta es interna y mono-operador.
type AuthConfig struct {
	OperatorUser     string
	OperatorPassword string
}

// RunsConfig ciclo de vida de las corridas retenidas en memoria para
// descarga. Todo se recalcula por corrida; esto solo es el buffer de
// descarga, no persistencia.
type RunsConfig struct {
	TTLMinutes  int
	PreviewRows int
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde archivo). Las env vars tienen prioridad. Nombres esperados:
// APP_ENV, HTTP_PORT, JWT_SECRET, OPERATOR_USER, RUNS_TTL_MINUTES, etc.
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
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "costeo-semanal"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			MaxUploadMB: getInt(v, "HTTP_MAX_UPLOAD_MB", 32),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "costeo-semanal"),
		},
		Auth: AuthConfig{
			OperatorUser:     getString(v, "OPERATOR_USER", "operador"),
			OperatorPassword: getString(v, "OPERATOR_PASSWORD", ""),
		},
		Runs: RunsConfig{
			TTLMinutes:  getInt(v, "RUNS_TTL_MINUTES", 30),
			PreviewRows: getInt(v, "RUNS_PREVIEW_ROWS", 10),
		},
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
