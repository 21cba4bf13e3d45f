package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App      `mapstructure:",squash"`
	Server    Server   `mapstructure:",squash"`
	Database  Database `mapstructure:",squash"`
	Meta      Meta     `mapstructure:",squash"`
	MetaSync  MetaSync `mapstructure:",squash"`
	Auth      Auth     `mapstructure:",squash"`
	SecretKey string   `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL          string `mapstructure:"meta_base_url"`
	URL              string `mapstructure:"-"`
	Version          string `mapstructure:"meta_version"`
	AppID            string `mapstructure:"meta_app_id"`
	AppSecret        string `mapstructure:"meta_app_secret"`
	OAuthRedirectURL string `mapstructure:"meta_oauth_redirect_url"`
	FrontendURL      string `mapstructure:"frontend_connection_url"`
}

// MetaSync controla o comportamento da sincronização com a Graph API.
type MetaSync struct {
	RequestPauseMillis int    `mapstructure:"meta_sync_request_pause_millis"`
	RequestTimeoutSecs int    `mapstructure:"meta_sync_request_timeout_seconds"`
	MaxRetries         int    `mapstructure:"meta_sync_max_retries"`
	BatchSize          int    `mapstructure:"meta_sync_batch_size"`
	InsightsMonthsBack int    `mapstructure:"meta_sync_insights_months_back"`
	CronSchedule       string `mapstructure:"meta_sync_cron"`
	ScheduleEnabled    bool   `mapstructure:"meta_sync_schedule_enabled"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/meta_dashboard")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v24.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_OAUTH_REDIRECT_URL", "http://localhost:8000/v1/meta/login/callback")
	viper.SetDefault("FRONTEND_CONNECTION_URL", "http://localhost:3000/settings/connections")

	// Defaults do cliente de sincronização. A pausa de 600ms após cada
	// chamada bem-sucedida mantém a taxa abaixo do rate limit da Meta.
	viper.SetDefault("META_SYNC_REQUEST_PAUSE_MILLIS", 600)
	viper.SetDefault("META_SYNC_REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("META_SYNC_MAX_RETRIES", 5)
	viper.SetDefault("META_SYNC_BATCH_SIZE", 50)
	viper.SetDefault("META_SYNC_INSIGHTS_MONTHS_BACK", 24)
	viper.SetDefault("META_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("META_SYNC_SCHEDULE_ENABLED", false)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
