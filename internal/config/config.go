package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Configはアプリ全体の設定
type Config struct {
	Port     string // サーバーポート（8080）
	GoEnv    string // dev/prod
	LogLevel string // debug/info/warn/error

	StorageDriver string // memory/postgres

	DatabaseURL      string // あればPOSTGRES_*より優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string // disable/require

	FEURL string // フロントURL（CORSで使う）

	CartStorageKey   string // カートの保存key（後ろにセッションID）
	ThemeStorageKey  string // テーマの保存key（後ろにセッションID）
	AdminProductsKey string // 管理画面の商品一覧の保存key

	FormRelayURL     string        // ニュースレター・お問い合わせの送信先
	FormRelayTimeout time.Duration // 送信タイムアウト

	ShutdownTimeout time.Duration
}

// Loadは環境変数（未設定は既定値）
func Load() (Config, error) {
	pgPort, err := getEnvInt("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	relayTimeout, err := getEnvDuration("FORM_RELAY_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:     getenv("PORT", "8080"),
		GoEnv:    getenv("GO_ENV", "dev"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		StorageDriver: strings.ToLower(getenv("STORAGE_DRIVER", DriverMemory)),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		FEURL: os.Getenv("FE_URL"),

		CartStorageKey:   getenv("CART_STORAGE_KEY", "VELOUR-cart-storage"),
		ThemeStorageKey:  getenv("THEME_STORAGE_KEY", "VELOUR-theme-storage"),
		AdminProductsKey: getenv("ADMIN_PRODUCTS_KEY", "admin-products"),

		FormRelayURL:     os.Getenv("FORM_RELAY_URL"),
		FormRelayTimeout: relayTimeout,

		ShutdownTimeout: shutdownTimeout,
	}

	//チェック
	switch cfg.StorageDriver {
	case DriverMemory:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			if cfg.PostgresUser == "" {
				return Config{}, fmt.Errorf("POSTGRES_USER is required")
			}
			if cfg.PostgresDB == "" {
				return Config{}, fmt.Errorf("POSTGRES_DB is required")
			}
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be memory or postgres: %q", cfg.StorageDriver)
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be number: %w", err)
	}

	return cfg, nil
}

// ":8080" 形式
func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) IsDev() bool {
	return c.GoEnv == "" || c.GoEnv == "dev"
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return d, nil
}
