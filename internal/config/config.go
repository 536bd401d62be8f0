package config

import (
	"fmt"
	"os"
	"strconv"

	"storefront/internal/pricing"

	"github.com/shopspring/decimal"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）

	JWTSecret string // JWT署名シークレット

	//金額計算の設定値
	TaxRate               decimal.Decimal // 税率（0.08）
	ShippingFlatFee       decimal.Decimal // 送料（定額）
	FreeShippingThreshold decimal.Decimal // 送料無料になる小計
	BundleDiscountPercent decimal.Decimal // まとめ買い値引率（%）
	ImportMarkupPercent   decimal.Decimal // 取り込み時のデフォルト上乗せ率（%）
	Currency              string          // ISO 4217（USD）

	GoEnv string // dev/prod
	FEURL string // フロントURL（CORSで使う）
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := mustAtoi("POSTGRES_PORT")
	if err != nil {
		return Config{}, err
	}

	taxRate, err := mustDecimal("TAX_RATE")
	if err != nil {
		return Config{}, err
	}
	shippingFee, err := mustDecimal("SHIPPING_FLAT_FEE")
	if err != nil {
		return Config{}, err
	}
	freeThreshold, err := mustDecimal("FREE_SHIPPING_THRESHOLD")
	if err != nil {
		return Config{}, err
	}
	bundleDiscount, err := mustDecimal("BUNDLE_DISCOUNT_PERCENT")
	if err != nil {
		return Config{}, err
	}
	importMarkup, err := mustDecimal("IMPORT_MARKUP_PERCENT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,

		JWTSecret: os.Getenv("JWT_SECRET"),

		TaxRate:               taxRate,
		ShippingFlatFee:       shippingFee,
		FreeShippingThreshold: freeThreshold,
		BundleDiscountPercent: bundleDiscount,
		ImportMarkupPercent:   importMarkup,
		Currency:              os.Getenv("CURRENCY"),

		GoEnv: os.Getenv("GO_ENV"),
		FEURL: os.Getenv("FE_URL"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.PostgresHost == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Currency == "" {
		return Config{}, fmt.Errorf("CURRENCY is required")
	}
	if !pricing.ValidCurrency(cfg.Currency) {
		return Config{}, fmt.Errorf("CURRENCY must be an ISO 4217 code")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}
	if cfg.FEURL == "" {
		return Config{}, fmt.Errorf("FE_URL is required")
	}

	return cfg, nil
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func mustDecimal(key string) (decimal.Decimal, error) {
	v := os.Getenv(key)
	if v == "" {
		return decimal.Zero, fmt.Errorf("%s is required", key)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be decimal: %w", key, err)
	}
	return d, nil
}
