package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	RedisAddr     string
	RedisPassword string

	JWTSecret       string
	GoogleClientID  string
	SuperAdminEmail string

	MoMo   MoMoConfig
	VNPay  VNPayConfig
	Reward RewardConfig
}

// MoMoConfig configures the MoMo wallet gateway client.
type MoMoConfig struct {
	Endpoint    string
	PartnerCode string
	AccessKey   string
	SecretKey   string
	RedirectURL string
	IPNURL      string
}

// VNPayConfig configures the VNPay redirect gateway.
type VNPayConfig struct {
	PayURL     string
	TmnCode    string
	HashSecret string
	ReturnURL  string
}

// RewardConfig holds the loyalty program knobs. Amounts are VND.
type RewardConfig struct {
	EarnRate       int     // points per 1,000,000 VND paid
	PointsPerSet   int     // points consumed per discount set
	SetValue       float64 // VND discount per set
	VoucherCost    int     // points to mint a voucher
	VoucherValue   float64 // VND value of a minted voucher
	VoucherTTLDays int
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		GoogleClientID:  os.Getenv("GOOGLE_CLIENT_ID"),
		SuperAdminEmail: os.Getenv("SUPER_ADMIN_EMAIL"),

		MoMo: MoMoConfig{
			Endpoint:    getenv("MOMO_ENDPOINT", "https://test-payment.momo.vn/v2/gateway/api/create"),
			PartnerCode: os.Getenv("MOMO_PARTNER_CODE"),
			AccessKey:   os.Getenv("MOMO_ACCESS_KEY"),
			SecretKey:   os.Getenv("MOMO_SECRET_KEY"),
			RedirectURL: os.Getenv("MOMO_REDIRECT_URL"),
			IPNURL:      os.Getenv("MOMO_IPN_URL"),
		},
		VNPay: VNPayConfig{
			PayURL:     getenv("VNPAY_PAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
			TmnCode:    os.Getenv("VNPAY_TMN_CODE"),
			HashSecret: os.Getenv("VNPAY_HASH_SECRET"),
			ReturnURL:  os.Getenv("VNPAY_RETURN_URL"),
		},
		Reward: RewardConfig{
			EarnRate:       getenvInt("REWARD_EARN_RATE", 10),
			PointsPerSet:   getenvInt("REWARD_POINTS_PER_SET", 100),
			SetValue:       getenvFloat("REWARD_SET_VALUE", 50000),
			VoucherCost:    getenvInt("REWARD_VOUCHER_COST", 200),
			VoucherValue:   getenvFloat("REWARD_VOUCHER_VALUE", 100000),
			VoucherTTLDays: getenvInt("REWARD_VOUCHER_TTL_DAYS", 30),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	return cfg, nil
}

// DSN builds the Postgres connection string when DATABASE_URL is not given.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
