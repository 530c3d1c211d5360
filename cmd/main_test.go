package main

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	assert.Equal(t, "config.env", parseFlags())
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	assert.Equal(t, "myconfig.env", parseFlags())
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	appHost, appPort, pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaAddr, kafkaTopic, logLevel,
		resetSecret, resetExpSecond,
		err := parseConfig("does-not-exist.env")

	assert.NoError(t, err)
	assert.Equal(t, "localhost", appHost)
	assert.Equal(t, "8080", appPort)
	assert.Equal(t, "localhost", pgHost)
	assert.Equal(t, 5432, pgPort)
	assert.Equal(t, "user", pgUser)
	assert.Equal(t, "password", pgPassword)
	assert.Equal(t, "accounts", pgDB)
	assert.Equal(t, 16, pgMaxOpenConns)
	assert.Equal(t, 8, pgMaxIdleConns)
	assert.Equal(t, "localhost", redisHost)
	assert.Equal(t, 6379, redisPort)
	assert.Equal(t, 0, redisDB)
	assert.Empty(t, redisPassword)
	assert.Empty(t, kafkaAddr, "audit publishing is off by default")
	assert.Equal(t, "account-events", kafkaTopic)
	assert.Equal(t, "info", logLevel)
	assert.NotEmpty(t, resetSecret)
	assert.Equal(t, 900, resetExpSecond)
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	resetEnv()
	os.Setenv("APP_PORT", "9090")
	os.Setenv("POSTGRES_DB", "users_test")
	os.Setenv("KAFKA_ADDR", "localhost:9092")
	os.Setenv("RESET_TOKEN_EXP_SECOND", "60")
	defer resetEnv()

	_, appPort, _, _, _, _, pgDB,
		_, _,
		_, _, _, _,
		kafkaAddr, _, _,
		_, resetExpSecond,
		err := parseConfig("does-not-exist.env")

	assert.NoError(t, err)
	assert.Equal(t, "9090", appPort)
	assert.Equal(t, "users_test", pgDB)
	assert.Equal(t, "localhost:9092", kafkaAddr)
	assert.Equal(t, 60, resetExpSecond)
}

func TestParseConfig_InvalidNumber(t *testing.T) {
	resetEnv()
	os.Setenv("POSTGRES_PORT", "not-a-number")
	defer resetEnv()

	_, _, _, _, _, _, _,
		_, _,
		_, _, _, _,
		_, _, _,
		_, _,
		err := parseConfig("does-not-exist.env")

	assert.Error(t, err)
}
