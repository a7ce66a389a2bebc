// Package jwt provides HS256 signing and parsing for typed claims.
//
// The service is parameterized by a claims type T, which must implement
// jwt.Claims (typically by embedding jwt.RegisteredClaims). The issuer
// defines its own claims structure; this package only signs and verifies.
package jwt

import (
	stderrors "errors"
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/skillsenselab/authcore/errors"
)

// Service signs and parses tokens carrying claims of type T.
type Service[T gojwt.Claims] struct {
	cfg      Config
	newEmpty func() T
}

// NewService creates a new signing service. The newEmpty function returns a
// zero-value instance of T for parsing. A missing signing key fails here with
// a CONFIGURATION_ERROR; callers treat that as fatal at startup.
func NewService[T gojwt.Claims](cfg Config, newEmpty func() T) (*Service[T], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service[T]{cfg: cfg, newEmpty: newEmpty}, nil
}

// Config returns the effective configuration (defaults applied).
func (s *Service[T]) Config() Config {
	return s.cfg
}

// Sign creates a signed token from the given claims. Time claims are the
// caller's responsibility; the issuer stamps IssuedAt/ExpiresAt itself.
func (s *Service[T]) Sign(claims T) (string, error) {
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", errors.Internal(fmt.Errorf("jwt: sign token: %w", err))
	}
	return signed, nil
}

// Parse validates a token string and returns the parsed claims. Signature,
// expiry, and (if configured) issuer are all verified.
func (s *Service[T]) Parse(raw string) (T, error) {
	var zero T
	claims := s.newEmpty()

	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}

	token, err := gojwt.ParseWithClaims(raw, claims, s.keyFunc, opts...)
	if err != nil {
		if stderrors.Is(err, gojwt.ErrTokenExpired) {
			return zero, errors.TokenExpired().WithCause(err)
		}
		return zero, errors.TokenInvalid().WithCause(err)
	}
	if !token.Valid {
		return zero, errors.TokenInvalid()
	}
	parsed, ok := token.Claims.(T)
	if !ok {
		return zero, errors.TokenInvalid()
	}
	return parsed, nil
}

func (s *Service[T]) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("jwt: unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}
