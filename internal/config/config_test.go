package config

import (
	"os"
	"path/filepath"
	"testing"

	"groupies/pkg/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SECRET_KEY", "DATABASE_URL", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
	"PORT", "HOST", "GIN_MODE", "LOG_LEVEL", "REDIS_ADDR", "REDIS_PASSWORD",
	"KAFKA_BROKERS", "KAFKA_NOTIFY_TOPIC", "MENU_PATH",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Source)
	assert.Equal(t, "sqlite:///database.db", cfg.DatabaseConfig.URL)
	assert.Equal(t, 5000, cfg.MainConfig.Port)
	assert.Equal(t, "BBQ Nation 7@777 (Group of 7)", cfg.EventConfig.DefaultName)
	assert.Equal(t, 7, cfg.EventConfig.MembersNeeded)
	assert.Equal(t, "groupies_session", cfg.SessionConfig.CookieName)
	assert.Equal(t, constants.SESSION_EXPIRY_HOURS, cfg.SessionConfig.MaxAgeHours)
	assert.Equal(t, "static/menu_777.json", cfg.StaticSrcConfig.MenuPath)
	assert.Empty(t, cfg.RedisAddr())
	assert.Empty(t, cfg.KafkaBrokers())

	// 未配置密钥时自动生成
	assert.True(t, cfg.SessionConfig.SecretGenerated)
	assert.Len(t, cfg.SessionConfig.Secret, 64)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
[mainConfig]
port = 8080

[sessionConfig]
secret = "from-file"

[eventConfig]
membersNeeded = 3
`)
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, 9090, cfg.MainConfig.Port, "环境变量优先")
	assert.Equal(t, "from-file", cfg.SessionConfig.Secret)
	assert.False(t, cfg.SessionConfig.SecretGenerated)
	assert.Equal(t, 3, cfg.EventConfig.MembersNeeded)
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers())
	assert.Equal(t, "token", cfg.TelegramConfig.BotToken)
}

func TestLoadBadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "abc")

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadBadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "[mainConfig\nport=")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRepoConfig(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("../../configs/config.toml")
	require.NoError(t, err)
	assert.Equal(t, "../../configs/config.toml", cfg.Source)
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
	assert.Empty(t, cfg.SecurityConfig.AllowOrigins)
	assert.True(t, cfg.SessionConfig.SecretGenerated)
}
