package secrets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyVaultSecrets_Disabled(t *testing.T) {
	result, err := ApplyVaultSecrets(context.Background(), VaultConfig{})
	require.NoError(t, err)
	assert.False(t, result.Enabled)
}

func TestApplyVaultSecrets_Incomplete(t *testing.T) {
	_, err := ApplyVaultSecrets(context.Background(), VaultConfig{Enabled: true, Addr: "http://vault"})
	assert.ErrorIs(t, err, ErrVaultIncomplete)
}

func TestApplyVaultSecrets_KVv2(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/secret/data/health-survey", r.URL.Path)
		assert.Equal(t, "root", r.Header.Get("X-Vault-Token"))
		w.Write([]byte(`{"data":{"data":{"SECRETS_TEST_DB_PASSWORD":"s3cret","SECRETS_TEST_PORT":5433,"SECRETS_TEST_KEEP":"vault"}}}`))
	}))
	defer server.Close()

	t.Setenv("SECRETS_TEST_DB_PASSWORD", "")
	t.Setenv("SECRETS_TEST_PORT", "")
	t.Setenv("SECRETS_TEST_KEEP", "local")

	result, err := ApplyVaultSecrets(context.Background(), VaultConfig{
		Enabled:   true,
		Addr:      server.URL,
		Token:     "root",
		Mount:     "secret",
		Path:      "health-survey",
		KVVersion: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Loaded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "s3cret", os.Getenv("SECRETS_TEST_DB_PASSWORD"))
	assert.Equal(t, "5433", os.Getenv("SECRETS_TEST_PORT"))
	assert.Equal(t, "local", os.Getenv("SECRETS_TEST_KEEP"))
}

func TestApplyVaultSecrets_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "permission denied", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := ApplyVaultSecrets(context.Background(), VaultConfig{
		Enabled: true, Addr: server.URL, Token: "bad", Mount: "secret", Path: "x", KVVersion: 2,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestBuildVaultURL(t *testing.T) {
	url, err := buildVaultURL("http://vault:8200/", "/secret/", "/app", 1)
	require.NoError(t, err)
	assert.Equal(t, "http://vault:8200/v1/secret/app", url)

	url, err = buildVaultURL("http://vault:8200", "secret", "app", 2)
	require.NoError(t, err)
	assert.Equal(t, "http://vault:8200/v1/secret/data/app", url)

	_, err = buildVaultURL("", "secret", "app", 2)
	assert.Error(t, err)
}

func TestExtractVaultData(t *testing.T) {
	data, err := extractVaultData([]byte(`{"data":{"A":"1"}}`), 1)
	require.NoError(t, err)
	assert.Equal(t, "1", data["A"])

	_, err = extractVaultData([]byte(`{"data":{"A":"1"}}`), 2)
	assert.Error(t, err)

	_, err = extractVaultData([]byte(`{}`), 2)
	assert.Error(t, err)
}

func TestLoadVaultConfigFromEnv(t *testing.T) {
	t.Setenv("VAULT_ENABLED", "TRUE")
	t.Setenv("VAULT_PATH", "from-env")
	t.Setenv("VAULT_MOUNT", "")
	t.Setenv("VAULT_KV_VERSION", "1")
	t.Setenv("VAULT_TIMEOUT_MS", "250")

	cfg := LoadVaultConfigFromEnv("")
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "from-env", cfg.Path)
	assert.Equal(t, "secret", cfg.Mount)
	assert.Equal(t, 1, cfg.KVVersion)
	assert.Equal(t, int64(250), cfg.Timeout.Milliseconds())

	assert.Equal(t, "override", LoadVaultConfigFromEnv("override").Path)
}
