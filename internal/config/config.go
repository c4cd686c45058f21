package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // あれば接続文字列を最優先で使う
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string // disable/require

	JWTSecret string        // JWT署名シークレット
	TokenTTL  time.Duration // セッショントークンの有効期限

	GoEnv string // dev/prod
	FEURL string // フロントURL（CORSで使う）

	// メール通知（未設定なら送信無効でログだけ残す）
	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailFrom     string
	AdminEmail   string // 注文通知の宛先
}

// Loadは環境変数から設定を組み立てる
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "app"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv: getenv("GO_ENV", "dev"),
		FEURL: getenv("FE_URL", "http://localhost:5173"),

		MailHost:     os.Getenv("MAIL_HOST"),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),
	}

	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	cfg.PostgresPort = pgPort

	mailPort, err := atoiDefault("MAIL_PORT", 587)
	if err != nil {
		return Config{}, err
	}
	cfg.MailPort = mailPort

	//トークン有効期限は日数で指定（既定30日）
	ttlDays, err := atoiDefault("JWT_EXPIRES_IN_DAYS", 30)
	if err != nil {
		return Config{}, err
	}
	cfg.TokenTTL = time.Duration(ttlDays) * 24 * time.Hour

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// 本番向けの設定かどうか（cookieのSecure属性などに使う）
func (c Config) IsProd() bool {
	return c.GoEnv == "prod" || c.GoEnv == "production"
}

// メール送信が設定されているか
func (c Config) MailEnabled() bool {
	return c.MailHost != "" && c.MailFrom != ""
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
