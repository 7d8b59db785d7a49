package auth_test

import (
	"testing"
	"time"

	"taskManager/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_SignVerify(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", time.Hour)

	token, err := manager.Sign("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

// токен, подписанный другим секретом, не проходит проверку
func TestTokenManager_WrongSecret(t *testing.T) {
	manager := auth.NewTokenManager("secret-one", time.Hour)
	other := auth.NewTokenManager("secret-two", time.Hour)

	token, err := manager.Sign("alice")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestTokenManager_Expired(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Sign("alice")
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.Error(t, err)
}

func TestTokenManager_Garbage(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", time.Hour)

	_, err := manager.Verify("не.токен.вовсе")
	assert.Error(t, err)
}
