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
	HTTPPort       int           `yaml:"http_port"`
	PostsPerPage   int           `yaml:"posts_per_page"`
	SessionTTL     time.Duration `yaml:"session_ttl"` // nanoseconds
	SecureCookies  bool          `yaml:"secure_cookies"`
	LogLevel       string        `yaml:"log_level"`
	LogJSON        bool          `yaml:"log_json"`
	AllowedOrigins []string      `yaml:"allowed_origins"` // origins of the browser client
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	Pg         Pg     `yaml:"pg"`
	SessionKey string `yaml:"session_key"`
}

func (s *Config) SessionKey() string {
	return s.Private.SessionKey
}

func (s *Config) SessionTTL() time.Duration {
	return s.Public.SessionTTL
}

func (s *Config) Pg() Pg {
	return s.Private.Pg
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}
