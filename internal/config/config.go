package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Redis           Redis           `mapstructure:",squash"`
	Meta            Meta            `mapstructure:",squash"`
	Retry           Retry           `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	MetaInsightSync MetaInsightSync `mapstructure:",squash"`
	SecretKey       string          `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	FrontendURL    string   `mapstructure:"frontend_url"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	URL          string        `mapstructure:"redis_url"`
	CacheEnabled bool          `mapstructure:"insights_cache_enabled"`
	CacheTTL     time.Duration `mapstructure:"insights_cache_ttl"`
}

type Meta struct {
	BaseURL               string        `mapstructure:"meta_base_url"`
	URL                   string        `mapstructure:"meta_url"`
	Version               string        `mapstructure:"meta_version"`
	DialogURL             string        `mapstructure:"meta_dialog_url"`
	AppID                 string        `mapstructure:"meta_app_id"`
	AppSecret             string        `mapstructure:"meta_app_secret"`
	RedirectURI           string        `mapstructure:"meta_redirect_uri"`
	OAuthScopes           []string      `mapstructure:"meta_oauth_scopes"`
	AppSecretProof        bool          `mapstructure:"meta_appsecret_proof"`
	PageSize              int           `mapstructure:"meta_page_size"`
	ConversionActionTypes []string      `mapstructure:"meta_conversion_action_types"`
	DefaultTokenLifetime  time.Duration `mapstructure:"meta_default_token_lifetime"`
}

// Retry controla a política de novas tentativas do cliente da Graph API
type Retry struct {
	MaxAttempts    int           `mapstructure:"meta_retry_max_attempts"`
	BackoffFactor  float64       `mapstructure:"meta_retry_backoff_factor"`
	RequestTimeout time.Duration `mapstructure:"meta_request_timeout"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Auth struct {
	Secret        string        `mapstructure:"auth_secret"`
	OAuthStateTTL time.Duration `mapstructure:"oauth_state_ttl"`
}

type MetaInsightSync struct {
	CronSchedule        string   `mapstructure:"meta_insight_sync_cron"`
	LookbackDays        int      `mapstructure:"meta_insight_sync_lookback_days"`
	Levels              []string `mapstructure:"meta_insight_sync_levels"`
	RequestDelaySeconds int      `mapstructure:"meta_insight_sync_request_delay_seconds"`
	MaxConcurrentJobs   int      `mapstructure:"meta_insight_sync_max_concurrent_jobs"`
	Enabled             bool     `mapstructure:"meta_insight_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("FRONTEND_URL", "")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/fb_insights?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("INSIGHTS_CACHE_ENABLED", false)
	viper.SetDefault("INSIGHTS_CACHE_TTL", "5m")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_DIALOG_URL", "https://www.facebook.com")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_REDIRECT_URI", "http://localhost:8000/v1/facebook/oauth/callback")
	viper.SetDefault("META_OAUTH_SCOPES", "ads_read,ads_management,business_management")
	viper.SetDefault("META_APPSECRET_PROOF", false)
	viper.SetDefault("META_PAGE_SIZE", 100)
	viper.SetDefault("META_CONVERSION_ACTION_TYPES", "purchase,offsite_conversion.fb_pixel_purchase")
	viper.SetDefault("META_DEFAULT_TOKEN_LIFETIME", "1440h") // 60 dias

	viper.SetDefault("META_RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("META_RETRY_BACKOFF_FACTOR", 2.0)
	viper.SetDefault("META_REQUEST_TIMEOUT", "30s")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("OAUTH_STATE_TTL", "15m")

	// Defaults para sincronização de insights
	viper.SetDefault("META_INSIGHT_SYNC_CRON", "0 3 * * *")        // Todos os dias às 3h da manhã
	viper.SetDefault("META_INSIGHT_SYNC_LOOKBACK_DAYS", 7)         // 7 dias para buscar dados
	viper.SetDefault("META_INSIGHT_SYNC_LEVELS", "campaign")       // Níveis sincronizados
	viper.SetDefault("META_INSIGHT_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre requisições
	viper.SetDefault("META_INSIGHT_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 jobs concorrentes
	viper.SetDefault("META_INSIGHT_SYNC_ENABLED", false)           // Habilitar sincronização

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

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

	config.Normalize()

	return config, nil
}

// Normalize preenche os campos derivados e corrige valores fora do intervalo
func (c *Config) Normalize() {
	c.Meta.URL = fmt.Sprintf("%s/%s", c.Meta.BaseURL, c.Meta.Version)

	if c.Retry.MaxAttempts < 1 {
		c.Retry.MaxAttempts = 1
	}
	if c.Meta.PageSize <= 0 {
		c.Meta.PageSize = 100
	}
	if c.MetaInsightSync.MaxConcurrentJobs < 1 {
		c.MetaInsightSync.MaxConcurrentJobs = 1
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
