package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	secrets := map[string]string{
		"ANTHROPIC_API_KEY": "sk-test-123",
		"GEMINI_API_KEY":    "g-test-456",
	}

	require.NoError(t, EncryptSecretsFile(dir, "hunter2", secrets))
	assert.True(t, SecretsFileExists(dir))

	got, err := DecryptSecretsFile(dir, "hunter2")
	require.NoError(t, err)
	assert.Equal(t, secrets, got)
}

func TestDecryptWithWrongPasswordFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, EncryptSecretsFile(dir, "correct", map[string]string{"K": "v"}))

	_, err := DecryptSecretsFile(dir, "incorrect")
	assert.Error(t, err)
}

func TestGetSecretPrecedence(t *testing.T) {
	t.Setenv("FRONTDESK_TEST_SECRET", "from-env")
	SetDecryptedSecrets(nil)
	t.Cleanup(func() { SetDecryptedSecrets(nil) })

	// Environment fallback.
	value, err := GetSecret("FRONTDESK_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)

	// In-memory secrets win.
	SetSecret("FRONTDESK_TEST_SECRET", "from-file")
	value, err = GetSecret("FRONTDESK_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)

	_, err = GetSecret("FRONTDESK_MISSING_SECRET")
	assert.Error(t, err)
}
