package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/languageclub/internal/utils"
)

const secret = "test-secret"

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestIssueVerifyRoundTrip(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	iss := NewIssuer(secret, WithClock(clk.now))
	ver := NewVerifier(secret, WithClock(clk.now))

	tok, err := iss.Issue(map[string]any{"email": "a@b.com", "name": "Ana"})
	require.NoError(t, err)

	clk.t = clk.t.Add(59 * time.Minute)
	id, err := ver.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", id.Email())
	assert.Equal(t, "Ana", id["name"])

	clk.t = clk.t.Add(2 * time.Minute)
	_, err = ver.Verify(tok)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}

func TestIssueOverridesCallerExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	iss := NewIssuer(secret, WithClock(func() time.Time { return now }))

	tok, err := iss.Issue(map[string]any{"email": "a@b.com", "exp": now.Add(48 * time.Hour).Unix()})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.Equal(t, now.Add(TokenTTL).Unix(), exp.Unix())
}

func TestVerifyRejects(t *testing.T) {
	ver := NewVerifier(secret)

	foreign, err := NewIssuer("someone-else").Issue(map[string]any{"email": "a@b.com"})
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@b.com"}).SignedString([]byte(secret))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"email": "a@b.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":         "",
		"garbage":       "not-a-jwt",
		"foreign key":   foreign,
		"missing exp":   noExp,
		"other alg":     hs512,
		"truncated sig": foreign[:len(foreign)-4],
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ver.Verify(raw)
			require.Error(t, err)
			assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
		})
	}
}

func TestIdentityEmail(t *testing.T) {
	assert.Equal(t, "", Identity{}.Email())
	assert.Equal(t, "", Identity{"email": 42}.Email())
	assert.Equal(t, "x@y.z", Identity{"email": "x@y.z"}.Email())
}

func TestIssueWithoutSecret(t *testing.T) {
	_, err := NewIssuer("").Issue(map[string]any{"email": "a@b.com"})
	assert.True(t, utils.IsCode(err, utils.CodeInternal))
}
