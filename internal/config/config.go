package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	ListenAddr  string `yaml:"listen_addr"`
	Environment string `yaml:"environment"` // "production" enables secure cookies

	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`

	AllowedOrigins []string `yaml:"allowed_origins"` // CORS origins for the admin UI

	PageSize       int    `yaml:"page_size"`        // default rows per admin table page
	MediaRoot      string `yaml:"media_root"`       // root directory of the images bucket
	MaxUploadBytes int64  `yaml:"max_upload_bytes"` // per-file cap for admin uploads

	LoginRPS   float64 `yaml:"login_rps"`   // per-IP rate limit on the login endpoint
	LoginBurst int     `yaml:"login_burst"`

	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
}

type Private struct {
	Pg       Pg       `yaml:"pg"`
	Identity Identity `yaml:"identity"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

// Identity holds credentials for the external auth service.
type Identity struct {
	BaseURL    string `yaml:"base_url"`
	ServiceKey string `yaml:"service_key"` // service-role key for admin endpoints
	JwtSecret  string `yaml:"jwt_secret"`  // shared secret the provider signs access tokens with
}

func (c *Config) SecureCookies() bool {
	return c.Public.Environment == "production"
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.ListenAddr == "" {
		c.Public.ListenAddr = ":8080"
	}
	if len(c.Public.AllowedOrigins) == 0 {
		c.Public.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if c.Public.PageSize <= 0 {
		c.Public.PageSize = 10
	}
	if c.Public.MediaRoot == "" {
		c.Public.MediaRoot = "media"
	}
	if c.Public.MaxUploadBytes <= 0 {
		c.Public.MaxUploadBytes = 10 << 20
	}
	if c.Public.LoginRPS <= 0 {
		c.Public.LoginRPS = 1
	}
	if c.Public.LoginBurst <= 0 {
		c.Public.LoginBurst = 5
	}
	if c.Public.AccessTokenTTL <= 0 {
		c.Public.AccessTokenTTL = 7 * 24 * time.Hour
	}
	if c.Public.RefreshTokenTTL <= 0 {
		c.Public.RefreshTokenTTL = 30 * 24 * time.Hour
	}
}
