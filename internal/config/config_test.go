package config

import (
	"os"
	"strings"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-extensions/internal/text"
)

const sampleXML = `<API REQUEST_DUMP="true">
	<CONTEXT>
		<PORT>8080</PORT>
		<HOST>0.0.0.0</HOST>
	</CONTEXT>
	<AUTHENTICATION>
		<ENABLE_TOKEN_AUTH>true</ENABLE_TOKEN_AUTH>
		<ADMIN_USER>admin</ADMIN_USER>
		<JWT_SECRET>from-file</JWT_SECRET>
	</AUTHENTICATION>
	<DB>
		<HOST>localhost</HOST>
		<PORT>5432</PORT>
		<DRIVER>postgres</DRIVER>
		<NAME>cms</NAME>
		<USERNAME>cms</USERNAME>
		<PASSWORD TYPE="plain">secret</PASSWORD>
		<POOL>
			<MAX_OPEN_CONNS>10</MAX_OPEN_CONNS>
		</POOL>
	</DB>
	<RATE_LIMIT>
		<REQUESTS_PER_SECOND>5</REQUESTS_PER_SECOND>
		<BURST>10</BURST>
	</RATE_LIMIT>
</API>`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleXML))
	require.NoError(t, err)

	assert.True(t, c.RequestDump)
	assert.Equal(t, 8080, c.Context.Port)
	assert.Equal(t, "admin", c.Authentication.AdminUser)
	assert.Equal(t, "plain", c.DB.Password.Type)
	assert.Equal(t, 10, c.DB.Pool.MaxOpenConns)
	assert.Equal(t, 5.0, c.RateLimit.RequestsPerSecond)
	assert.Equal(t, 10, c.RateLimit.Burst)

	// defaults
	assert.Equal(t, defaultPageSize, c.Pagination.PageSize)
	assert.Equal(t, "logs", c.Logging.Dir)

	assert.Equal(t, "host=localhost port=5432 user=cms password=secret dbname=cms sslmode=disable", c.DB.DSN())
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("CMS_DB_PASSWORD", "from-env")
	t.Setenv("CMS_JWT_SECRET", "jwt-env")

	c, err := Parse([]byte(sampleXML))
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.DB.Password.Value)
	assert.Equal(t, "jwt-env", c.Authentication.JWTSecret)
}

func TestParse_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CMS_ADMIN_PASSWORD_HASH=hash-from-dotenv\n"), 0o600))

	old := envFile
	envFile = path
	t.Cleanup(func() {
		envFile = old
		_ = os.Unsetenv("CMS_ADMIN_PASSWORD_HASH")
	})

	c, err := Parse([]byte(sampleXML))
	require.NoError(t, err)
	assert.Equal(t, "hash-from-dotenv", c.Authentication.AdminPasswordHash)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("<API><CONTEXT>"))
	assert.Error(t, err)
}

func TestParse_EncryptedPassword(t *testing.T) {
	sealed, err := text.Encrypt("db-secret", "config-key", PasswordSalt)
	require.NoError(t, err)
	doc := strings.Replace(sampleXML, `<PASSWORD TYPE="plain">secret</PASSWORD>`,
		`<PASSWORD TYPE="encrypted">`+sealed+`</PASSWORD>`, 1)

	t.Setenv("CMS_CONFIG_KEY", "")
	_, err = Parse([]byte(doc))
	assert.ErrorIs(t, err, ErrMissingConfigKey)

	t.Setenv("CMS_CONFIG_KEY", "wrong-key")
	_, err = Parse([]byte(doc))
	assert.ErrorIs(t, err, text.ErrDecrypt)

	t.Setenv("CMS_CONFIG_KEY", "config-key")
	c, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "db-secret", c.DB.Password.Value)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleXML), 0o600))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Same(t, c, GetConfig())

	// later calls return the first result
	again, err := LoadConfig("does-not-exist.xml")
	require.NoError(t, err)
	assert.Same(t, c, again)
}
