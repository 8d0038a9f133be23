package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yoockh/languageclub/internal/utils"
)

// TokenTTL is the fixed validity window of an issued token.
const TokenTTL = time.Hour

// Identity is the decoded token payload attached to an authenticated request.
type Identity map[string]any

// Email returns the "email" claim, or "" when absent or not a string.
func (id Identity) Email() string {
	s, _ := id["email"].(string)
	return s
}

type Option func(*clock)

type clock struct {
	now func() time.Time
}

// WithClock overrides time.Now; used by tests to move past expiry.
func WithClock(now func() time.Time) Option {
	return func(c *clock) { c.now = now }
}

func newClock(opts []Option) clock {
	c := clock{now: time.Now}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Issuer signs arbitrary identity payloads with HS256.
type Issuer struct {
	secret []byte
	clock
}

func NewIssuer(secret string, opts ...Option) *Issuer {
	return &Issuer{secret: []byte(secret), clock: newClock(opts)}
}

// Issue copies payload, stamps iat/exp and signs it. The payload shape is not
// inspected; trust comes only from later signature verification.
func (i *Issuer) Issue(payload map[string]any) (string, error) {
	const op = "Issuer.Issue"

	if len(i.secret) == 0 {
		return "", utils.E(utils.CodeInternal, op, "signing secret is empty", nil)
	}

	now := i.now()
	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(TokenTTL).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to sign token", err)
	}
	return signed, nil
}

// Verifier checks signature and expiry of tokens minted by an Issuer sharing
// the same secret.
type Verifier struct {
	secret []byte
	clock
}

func NewVerifier(secret string, opts ...Option) *Verifier {
	return &Verifier{secret: []byte(secret), clock: newClock(opts)}
}

var errEmptyToken = errors.New("empty token")

func (v *Verifier) Verify(raw string) (Identity, error) {
	const op = "Verifier.Verify"

	if raw == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized Access", errEmptyToken)
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || tok == nil || !tok.Valid {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized Access", err)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, utils.E(utils.CodeUnauthorized, op, "Unauthorized Access", nil)
	}
	return Identity(claims), nil
}
