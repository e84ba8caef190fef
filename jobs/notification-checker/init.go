package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/Jore52/Notificador-RSU/pkg/db"
	httpclient "github.com/Jore52/Notificador-RSU/pkg/http-client"
	"github.com/Jore52/Notificador-RSU/pkg/utils"
	"gopkg.in/yaml.v2"

	messagingDB "github.com/Jore52/Notificador-RSU/pkg/db/messaging"
	projectDB "github.com/Jore52/Notificador-RSU/pkg/db/project"
	emailsending "github.com/Jore52/Notificador-RSU/pkg/messaging/email-sending"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_PROJECT_DB_USERNAME   = "PROJECT_DB_USERNAME"
	ENV_PROJECT_DB_PASSWORD   = "PROJECT_DB_PASSWORD"
	ENV_MESSAGING_DB_USERNAME = "MESSAGING_DB_USERNAME"
	ENV_MESSAGING_DB_PASSWORD = "MESSAGING_DB_PASSWORD"

	ENV_SMTP_BRIDGE_API_KEY = "SMTP_BRIDGE_API_KEY"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		ProjectDB   db.DBConfigYaml `json:"project_db" yaml:"project_db"`
		MessagingDB db.DBConfigYaml `json:"messaging_db" yaml:"messaging_db"`
	} `json:"db_configs" yaml:"db_configs"`

	InstanceIDs []string `json:"instance_ids" yaml:"instance_ids"`

	SmtpBridgeConfig struct {
		URL            string        `json:"url" yaml:"url"`
		APIKey         string        `json:"api_key" yaml:"api_key"`
		RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"smtp_bridge_config" yaml:"smtp_bridge_config"`
}

var conf config

var (
	projectDBService   *projectDB.ProjectDBService
	messagingDBService *messagingDB.MessagingDBService
	smtpBridgeClient   *emailsending.SmtpBridgeClient
)

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

	// init db
	initDBs()

	// init mail sending through the smtp bridge
	smtpBridgeClient = emailsending.NewSmtpBridgeClient(loadEmailClientHTTPConfig())
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_PROJECT_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.ProjectDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_PROJECT_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.ProjectDB.Password = dbPassword
	}

	if dbUsername := os.Getenv(ENV_MESSAGING_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.MessagingDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_MESSAGING_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.MessagingDB.Password = dbPassword
	}

	if apiKey := os.Getenv(ENV_SMTP_BRIDGE_API_KEY); apiKey != "" {
		conf.SmtpBridgeConfig.APIKey = apiKey
	}
}

func initDBs() {
	var err error
	projectDBService, err = projectDB.NewProjectDBService(db.DBConfigFromYamlObj(conf.DBConfigs.ProjectDB, conf.InstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Project DB", slog.String("error", err.Error()))
		panic(err)
	}

	messagingDBService, err = messagingDB.NewMessagingDBService(db.DBConfigFromYamlObj(conf.DBConfigs.MessagingDB, conf.InstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Messaging DB", slog.String("error", err.Error()))
		panic(err)
	}
}

func loadEmailClientHTTPConfig() *httpclient.ClientConfig {
	return &httpclient.ClientConfig{
		RootURL: conf.SmtpBridgeConfig.URL,
		APIKey:  conf.SmtpBridgeConfig.APIKey,
		Timeout: conf.SmtpBridgeConfig.RequestTimeout,
	}
}
