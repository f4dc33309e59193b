package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TMDT-Web/TMDT-Web-Project-sub000/models"
)

func TestTokenRoundtrip(t *testing.T) {
	user := &models.User{
		ID:    "user-123",
		Email: "khach@example.com",
		Role:  models.RoleUser,
	}

	token, err := IssueToken("test-secret", user)
	require.NoError(t, err)

	claims, err := ParseToken("test-secret", token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
	require.Equal(t, "khach@example.com", claims.Email)
	require.Equal(t, string(models.RoleUser), claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("right-secret", &models.User{ID: "u1", Email: "a@b.c", Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = ParseToken("wrong-secret", token)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("secret", "not.a.token")
	require.Error(t, err)
}
