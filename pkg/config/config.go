package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Checkout      CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"REGENMARKET_APP_ENV" required:"true"`
	Port         string `envconfig:"REGENMARKET_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"REGENMARKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"REGENMARKET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"REGENMARKET_DB_DSN"`
	Driver string `envconfig:"REGENMARKET_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"REGENMARKET_DB_HOST"`
	LegacyPort     int    `envconfig:"REGENMARKET_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"REGENMARKET_DB_USER"`
	LegacyPassword string `envconfig:"REGENMARKET_DB_PASSWORD"`
	LegacyName     string `envconfig:"REGENMARKET_DB_NAME"`
	LegacySSLMode  string `envconfig:"REGENMARKET_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"REGENMARKET_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"REGENMARKET_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"REGENMARKET_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"REGENMARKET_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"REGENMARKET_REDIS_URL" required:"true"`
	Address      string        `envconfig:"REGENMARKET_REDIS_ADDR"`
	Password     string        `envconfig:"REGENMARKET_REDIS_PASSWORD"`
	DB           int           `envconfig:"REGENMARKET_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REGENMARKET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REGENMARKET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REGENMARKET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REGENMARKET_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REGENMARKET_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"REGENMARKET_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"REGENMARKET_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"REGENMARKET_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"REGENMARKET_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"REGENMARKET_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"REGENMARKET_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"REGENMARKET_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"REGENMARKET_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"REGENMARKET_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"REGENMARKET_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"REGENMARKET_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"REGENMARKET_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"REGENMARKET_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"REGENMARKET_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"REGENMARKET_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"REGENMARKET_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"REGENMARKET_AUTO_MIGRATE" default:"false"`
}

// CheckoutConfig carries the pricing table and the line-resolution policy.
// The fallback policy is explicit configuration instead of a compiled-in
// behavior so product can review it per environment.
type CheckoutConfig struct {
	StandardShippingCents int    `envconfig:"REGENMARKET_SHIPPING_STANDARD_CENTS" default:"100"`
	ExpressShippingCents  int    `envconfig:"REGENMARKET_SHIPPING_EXPRESS_CENTS" default:"200"`
	TaxRateBasisPoints    int    `envconfig:"REGENMARKET_TAX_RATE_BPS" default:"500"`
	MatchFallback         string `envconfig:"REGENMARKET_MATCH_FALLBACK" default:"first_product"`
}

const (
	// MatchFallbackFirstProduct preserves the legacy storefront behavior:
	// an unmatched cart line is assigned the first catalog product.
	MatchFallbackFirstProduct = "first_product"
	// MatchFallbackReject drops unmatched lines instead of guessing.
	MatchFallbackReject = "reject"
)

func (c CheckoutConfig) validate() error {
	switch c.MatchFallback {
	case MatchFallbackFirstProduct, MatchFallbackReject:
	default:
		return fmt.Errorf("invalid %s value %q", EnvMatchFallback, c.MatchFallback)
	}
	if c.TaxRateBasisPoints < 0 {
		return fmt.Errorf("tax rate must not be negative")
	}
	return nil
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
