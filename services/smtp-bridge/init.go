package main

import (
	"os"

	"github.com/Jore52/Notificador-RSU/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	sc "github.com/Jore52/Notificador-RSU/pkg/smtp-client"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_SMTP_BRIDGE_API_KEYS = "SMTP_BRIDGE_API_KEYS"
	ENV_SMTP_SERVER_USERNAME = "SMTP_SERVER_USERNAME"
	ENV_SMTP_SERVER_PASSWORD = "SMTP_SERVER_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	ApiKeys []string `json:"api_keys" yaml:"api_keys"`

	SMTPServerConfig sc.SmtpServerList `json:"smtp_server_config" yaml:"smtp_server_config"`
}

var conf config

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
		conf.Logging.IncludeBuildInfo,
	)

	// Override secrets from environment variables
	secretsOverride()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}

func secretsOverride() {
	if apiKeys := os.Getenv(ENV_SMTP_BRIDGE_API_KEYS); apiKeys != "" {
		conf.ApiKeys = []string{apiKeys}
	}

	username := os.Getenv(ENV_SMTP_SERVER_USERNAME)
	password := os.Getenv(ENV_SMTP_SERVER_PASSWORD)
	for i := range conf.SMTPServerConfig.Servers {
		if username != "" {
			conf.SMTPServerConfig.Servers[i].SetUsername(username)
		}
		if password != "" {
			conf.SMTPServerConfig.Servers[i].SetPassword(password)
		}
	}
}
