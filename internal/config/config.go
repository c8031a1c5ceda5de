package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Mongo          Mongo         `yaml:"mongo"`
	HttpPort       int           `yaml:"http_port"`
	PostsPerPage   int           `yaml:"posts_per_page"`
	MaxPageSize    int           `yaml:"max_page_size"`
	MaxThreadLen   int           `yaml:"max_thread_len"` // max thread/comment body length in runes
	StoreOpTimeout time.Duration `yaml:"store_op_timeout"`
	LogLevel       string        `yaml:"log_level"`
	LogJSON        bool          `yaml:"log_json"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

type Mongo struct {
	Uri    string `yaml:"uri"`
	Dbname string `yaml:"dbname"`
}

type Private struct {
	JwtKey        string `yaml:"jwt_key"`
	WebhookSecret string `yaml:"webhook_secret"` // shared secret for identity-provider webhook signatures
}

func (c *Config) JwtKey() string {
	return c.private.JwtKey
}

func (c *Config) WebhookSecret() string {
	return c.private.WebhookSecret
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

// New builds a config from already-parsed sections. Used by tests.
func New(public Public, private Private) *Config {
	return &Config{public, private}
}
