package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	Archive          Archive          `mapstructure:",squash"`
	DailySnapshotJob DailySnapshotJob `mapstructure:",squash"`
	WeeklyResetJob   WeeklyResetJob   `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Archive reúne os parâmetros do arquivamento: o segredo compartilhado do
// fechamento manual e o fuso comercial usado em todo cálculo de calendário.
type Archive struct {
	SecretKey       string   `mapstructure:"resumo_archive_secret"`
	Timezone        string   `mapstructure:"business_timezone"`
	AllowedNetworks []string `mapstructure:"archive_allowed_networks"`
}

type DailySnapshotJob struct {
	CronSchedule string `mapstructure:"daily_snapshot_cron"`
	Enabled      bool   `mapstructure:"daily_snapshot_enabled"`
}

type WeeklyResetJob struct {
	CronSchedule string `mapstructure:"weekly_reset_cron"`
	Enabled      bool   `mapstructure:"weekly_reset_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("RESUMO_ARCHIVE_SECRET", "")

	// A API da planilha só aceita chamadas vindas da rede interna
	viper.SetDefault("ARCHIVE_ALLOWED_NETWORKS", "127.0.0.1/32,::1/128,10.0.0.0/8,172.16.0.0/12,192.168.0.0/16")

	// Todo cálculo de agenda e de dia da semana usa o fuso comercial fixo,
	// independente do locale do servidor.
	viper.SetDefault("BUSINESS_TIMEZONE", "America/Sao_Paulo")

	// Defaults dos agendadores
	viper.SetDefault("DAILY_SNAPSHOT_CRON", "20 18 * * *") // Todos os dias às 18h20
	viper.SetDefault("DAILY_SNAPSHOT_ENABLED", true)
	viper.SetDefault("WEEKLY_RESET_CRON", "1 0 * * 1") // Segunda-feira às 00h01
	viper.SetDefault("WEEKLY_RESET_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
