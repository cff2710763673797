package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Payment mode values, matching the promotion site's global switch:
// "TRUE" offers the card widget only, "FALSE" offers manual transfer only,
// "NEUTRAL" offers transfer plus the OPay hosted cashier.
const (
	PaymentModeCard     = "TRUE"
	PaymentModeTransfer = "FALSE"
	PaymentModeNeutral  = "NEUTRAL"
)

// Transfer expiry behaviors. "warn" surfaces the expiry once and lets the
// user continue; "reset" clears the payment session and returns the funnel
// to the previous view.
const (
	ExpiryWarn  = "warn"
	ExpiryReset = "reset"
)

// BankAccount is one configured receiving account for manual transfers.
type BankAccount struct {
	BankName      string `mapstructure:"bankName" json:"bankName"`
	AccountNumber string `mapstructure:"accountNumber" json:"accountNumber"`
	AccountName   string `mapstructure:"accountName" json:"accountName"`
}

// Label returns the human-readable form used on the success screen and in
// the final redirect message, e.g. "Moniepoint MFB (7010661707)".
func (b BankAccount) Label() string {
	return fmt.Sprintf("%s (%s)", b.BankName, b.AccountNumber)
}

// Config holds all configuration values. It is loaded once at startup and
// injected into the services that need it; nothing mutates it afterwards.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisFunnelDB  int    `mapstructure:"REDIS_FUNNEL_DB"`
	RedisPaymentDB int    `mapstructure:"REDIS_PAYMENT_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Funnel behavior.
	ThemeColor                 string `mapstructure:"THEME_COLOR"`
	PaymentMode                string `mapstructure:"PAYMENT_MODE"`
	ShowDashboardBeforePayment bool   `mapstructure:"SHOW_DASHBOARD_BEFORE_PAYMENT"`
	TransitionDelayMS          int    `mapstructure:"TRANSITION_DELAY_MS"`
	ActivationAmountNaira      int64  `mapstructure:"ACTIVATION_AMOUNT_NAIRA"`

	// Manual transfer.
	BankAccounts           []BankAccount `mapstructure:"BANK_ACCOUNTS"`
	TransferWindowMinutes  int           `mapstructure:"TRANSFER_WINDOW_MINUTES"`
	TransferExpiryBehavior string        `mapstructure:"TRANSFER_EXPIRY_BEHAVIOR"`

	// Card gateway (inline widget public key + verify API).
	PaystackPublicKey string `mapstructure:"PAYSTACK_PUBLIC_KEY"`
	PaystackSecretKey string `mapstructure:"PAYSTACK_SECRET_KEY"`
	PaystackBaseURL   string `mapstructure:"PAYSTACK_BASE_URL"`

	// OPay hosted cashier.
	OpayPublicKey   string `mapstructure:"OPAY_PUBLIC_KEY"`
	OpayMerchantID  string `mapstructure:"OPAY_MERCHANT_ID"`
	OpayAPIURL      string `mapstructure:"OPAY_API_URL"`
	OpayReturnURL   string `mapstructure:"OPAY_RETURN_URL"`
	OpayCallbackURL string `mapstructure:"OPAY_CALLBACK_URL"`
	OpayCancelURL   string `mapstructure:"OPAY_CANCEL_URL"`

	// Receipt verification (Gemini vision). Empty key disables the gate.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Cloudinary archive for accepted receipts (optional).
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Final redirect target.
	RedirectUseWhatsApp bool   `mapstructure:"REDIRECT_USE_WHATSAPP"`
	WhatsAppNumber      string `mapstructure:"WHATSAPP_NUMBER"`
	TelegramURL         string `mapstructure:"TELEGRAM_URL"`
}

// AmountKobo returns the activation amount in minor currency units.
func (c *Config) AmountKobo() int64 {
	return c.ActivationAmountNaira * 100
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_FUNNEL_DB", 0)
	viper.SetDefault("REDIS_PAYMENT_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")

	viper.SetDefault("THEME_COLOR", "BLUE")
	viper.SetDefault("PAYMENT_MODE", PaymentModeNeutral)
	viper.SetDefault("SHOW_DASHBOARD_BEFORE_PAYMENT", true)
	viper.SetDefault("TRANSITION_DELAY_MS", 3000)
	viper.SetDefault("ACTIVATION_AMOUNT_NAIRA", 12000)

	viper.SetDefault("BANK_ACCOUNTS", []map[string]interface{}{
		{
			"bankName":      "Moniepoint MFB",
			"accountNumber": "7010661707",
			"accountName":   "Chimezie David Igwe",
		},
	})
	viper.SetDefault("TRANSFER_WINDOW_MINUTES", 30)
	viper.SetDefault("TRANSFER_EXPIRY_BEHAVIOR", ExpiryWarn)

	viper.SetDefault("PAYSTACK_BASE_URL", "https://api.paystack.co/")
	viper.SetDefault("OPAY_API_URL", "https://sandboxapi.opaycheckout.com/api/v1/international/cashier/create")

	viper.SetDefault("REDIRECT_USE_WHATSAPP", true)
	viper.SetDefault("TELEGRAM_URL", "https://t.me/streamafrica_official")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
