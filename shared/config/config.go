package config

import (
	"fmt"
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
	Http           Http          `yaml:"http"`
	Log            Log           `yaml:"log"`
	RequestTimeout time.Duration `yaml:"request_timeout"` // bound for every storage / identity call
	SecureCookies  bool          `yaml:"secure_cookies"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MaxPostBytes   int           `yaml:"max_post_bytes"` // whole post record, title + content
	CSRF           CSRF          `yaml:"csrf"`
}

type Http struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type CSRF struct {
	// Identity bootstrap endpoints, no session exists yet when they are called.
	ExemptPaths []string `yaml:"exempt_paths"`
}

type Private struct {
	Pg         Pg     `yaml:"pg"`
	RedisURL   string `yaml:"redis_url"` // empty disables session revocation
	SessionKey string `yaml:"session_key"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

const (
	DefaultMaxPostBytes   = 1 << 20
	DefaultRequestTimeout = 5 * time.Second
)

var DefaultCSRFExemptPaths = []string{"/v1/auth/login", "/v1/auth/signup", "/v1/auth/refresh"}

func (c *Config) SessionKey() string {
	return c.Private.SessionKey
}

func (p *Public) setDefaults() {
	if p.Http.Addr == "" {
		p.Http.Addr = ":8080"
	}
	if p.Http.ReadTimeout == 0 {
		p.Http.ReadTimeout = 15 * time.Second
	}
	if p.Http.WriteTimeout == 0 {
		p.Http.WriteTimeout = 15 * time.Second
	}
	if p.Http.ShutdownTimeout == 0 {
		p.Http.ShutdownTimeout = 10 * time.Second
	}
	if p.Log.Level == "" {
		p.Log.Level = "info"
	}
	if p.RequestTimeout == 0 {
		p.RequestTimeout = DefaultRequestTimeout
	}
	if p.MaxPostBytes == 0 {
		p.MaxPostBytes = DefaultMaxPostBytes
	}
	if p.CSRF.ExemptPaths == nil {
		p.CSRF.ExemptPaths = DefaultCSRFExemptPaths
	}
}

func (c *Config) validate() error {
	if c.Private.SessionKey == "" {
		return fmt.Errorf("session_key is required")
	}
	if c.Private.Pg.Host == "" || c.Private.Pg.Dbname == "" {
		return fmt.Errorf("pg host and dbname are required")
	}
	if c.Public.MaxPostBytes < 0 {
		return fmt.Errorf("max_post_bytes must be positive")
	}
	return nil
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err = yaml.UnmarshalStrict(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.setDefaults()

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	if err := cfg.validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}
