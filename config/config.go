package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultCommissionRate     = 8.0
	defaultMaxCommissionRate  = 50.0
	defaultDeliveryFee        = 500.0
	defaultQRCodeSize         = 256
	defaultWorkerPort         = 8081
)

// DefaultOrderNumberRetries is how many times checkout is retried after an
// order number collision, not counting the first attempt.
const DefaultOrderNumberRetries = 5

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		AutoMigrate bool   `json:"autoMigrate" yaml:"autoMigrate"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	// Commission bounds and the rate assigned to newly registered vendors
	Commission *CommissionConfig `json:"commission" yaml:"commission"`

	// Order placement settings
	Order *OrderConfig `json:"order" yaml:"order"`

	// PubSub configuration for event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// QRCode configuration for order receipts
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// Receipts configuration for the receipt bucket
	Receipts *ReceiptsConfig `json:"receipts" yaml:"receipts"`

	// Worker configuration for the event worker binary
	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`

	// Queries slower than this are logged as warnings; zero uses the default
	SlowQuery time.Duration `json:"slowQuery" yaml:"slowQuery"`
}

// CommissionConfig defines the accepted commission rate range, in percent.
type CommissionConfig struct {
	DefaultRate float64 `json:"defaultRate" yaml:"defaultRate"`
	MinRate     float64 `json:"minRate" yaml:"minRate"`
	MaxRate     float64 `json:"maxRate" yaml:"maxRate"`
}

// DefaultCommission returns the commission settings used when none are configured.
func DefaultCommission() *CommissionConfig {
	return &CommissionConfig{
		DefaultRate: defaultCommissionRate,
		MaxRate:     defaultMaxCommissionRate,
	}
}

// OrderConfig defines checkout settings
type OrderConfig struct {
	// Flat delivery fee charged per order
	DeliveryFee float64 `json:"deliveryFee" yaml:"deliveryFee"`

	// Attempts made when a generated order number collides with an existing one
	NumberRetries int `json:"numberRetries" yaml:"numberRetries"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// ReceiptsConfig defines where rendered receipts are cached
type ReceiptsConfig struct {
	// gocloud.dev bucket URL, e.g. mem://, file:///var/receipts, gs://bucket
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`
}

// WorkerConfig defines the event worker server
type WorkerConfig struct {
	Port int `json:"port" yaml:"port"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local", "google" or "kafka"; empty disables publishing
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Topic ID (google) or topic name (kafka)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// Kafka bootstrap brokers (for kafka provider)
	Brokers []string `json:"brokers" yaml:"brokers"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills optional sections that were left out of the config file.
func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Commission == nil {
		cfg.Commission = DefaultCommission()
	}

	if cfg.Order == nil {
		cfg.Order = &OrderConfig{DeliveryFee: defaultDeliveryFee}
	}
	if cfg.Order.NumberRetries <= 0 {
		cfg.Order.NumberRetries = DefaultOrderNumberRetries
	}

	if cfg.QRCode == nil {
		cfg.QRCode = &QRCodeConfig{Size: defaultQRCodeSize, ErrorCorrectionLevel: "M"}
	}

	if cfg.Receipts == nil || cfg.Receipts.BucketURL == "" {
		cfg.Receipts = &ReceiptsConfig{BucketURL: "mem://"}
	}

	if cfg.Worker == nil || cfg.Worker.Port == 0 {
		cfg.Worker = &WorkerConfig{Port: defaultWorkerPort}
	}
}

// validate rejects settings that would make checkout or vendor
// onboarding misbehave at runtime.
func validate(cfg *Config) error {
	c := cfg.Commission
	if c.MinRate < 0 || c.MinRate > c.MaxRate || c.MaxRate > 100 {
		return errors.Errorf("commission range [%v, %v] must lie within [0, 100]", c.MinRate, c.MaxRate)
	}
	if c.DefaultRate < c.MinRate || c.DefaultRate > c.MaxRate {
		return errors.Errorf("commission.defaultRate %v is outside [%v, %v]", c.DefaultRate, c.MinRate, c.MaxRate)
	}

	if cfg.Order.DeliveryFee < 0 {
		return errors.Errorf("order.deliveryFee must not be negative, got %v", cfg.Order.DeliveryFee)
	}

	switch strings.ToUpper(cfg.QRCode.ErrorCorrectionLevel) {
	case "", "L", "M", "Q", "H":
	default:
		return errors.Errorf("qrcode.errorCorrectionLevel %q is not one of L, M, Q, H", cfg.QRCode.ErrorCorrectionLevel)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
