package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_TokenRoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour, "host-sentinel")

	token, expires, err := svc.GenerateToken("admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "host-sentinel", claims.Issuer)
}

func TestService_ValidateToken_Failures(t *testing.T) {
	svc := NewService("secret", time.Hour, "host-sentinel")
	good, _, err := svc.GenerateToken("admin")
	require.NoError(t, err)

	expiredSvc := NewService("secret", time.Hour, "host-sentinel")
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiredSvc.GenerateToken("admin")
	require.NoError(t, err)

	otherIssuer, _, err := NewService("secret", time.Hour, "someone-else").GenerateToken("admin")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Username: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		svc     *Service
		token   string
		wantErr error
	}{
		{name: "wrong secret", svc: NewService("other", time.Hour, "host-sentinel"), token: good, wantErr: ErrInvalidToken},
		{name: "expired", svc: svc, token: expired, wantErr: ErrExpiredToken},
		{name: "wrong issuer", svc: svc, token: otherIssuer, wantErr: ErrInvalidToken},
		{name: "unsigned", svc: svc, token: none, wantErr: ErrInvalidToken},
		{name: "garbage", svc: svc, token: "not.a.token", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStaticCredentials(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	creds := StaticCredentials{Username: "admin", PasswordHash: hash}

	tests := []struct {
		name     string
		creds    StaticCredentials
		user     string
		password string
		wantErr  bool
	}{
		{name: "valid", creds: creds, user: "admin", password: "hunter2"},
		{name: "wrong password", creds: creds, user: "admin", password: "hunter3", wantErr: true},
		{name: "wrong user", creds: creds, user: "root", password: "hunter2", wantErr: true},
		{name: "no hash configured", creds: StaticCredentials{Username: "admin"}, user: "admin", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Authenticate(tt.user, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				return
			}
			assert.NoError(t, err)
		})
	}
}
