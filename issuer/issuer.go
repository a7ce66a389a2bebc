// Package issuer turns a login request into a signed access token, defending
// against brute-force guessing, and drives the refresh flow.
//
// Authenticate runs: throttle check -> directory lookup -> credential verify
// -> entitlement resolution -> claims assembly -> signed token + refresh
// token. Failed attempts increment a per-identity counter and apply an
// escalating, caller-cancellable delay; unknown-identity and wrong-password
// failures are byte-identical so nothing leaks which factor was wrong.
//
// Throttle state, credential verification, and refresh-token issuance are
// three independent consistency domains; no transaction spans them. A crash
// between the success-path reset and token issuance leaves at worst one
// avoidable retry, never an unsafe state.
package issuer

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/authcore/entitlement"
	"github.com/skillsenselab/authcore/errors"
	"github.com/skillsenselab/authcore/jwt"
	"github.com/skillsenselab/authcore/logger"
	"github.com/skillsenselab/authcore/password"
	"github.com/skillsenselab/authcore/refresh"
	"github.com/skillsenselab/authcore/throttle"
)

// Config holds issuer policy configuration.
type Config struct {
	// MaxAttempts is the failure threshold; once reached, every further
	// attempt in the window is rejected before any lookup or verification
	// (default: 5).
	MaxAttempts int `mapstructure:"max_attempts"`

	// MaxDelay caps the escalating post-failure delay in seconds; the
	// applied delay is min(count, MaxDelay) seconds (default: 5).
	MaxDelay int `mapstructure:"max_delay"`

	// SuperRole names the role that bypasses module gating (optional).
	SuperRole string `mapstructure:"super_role"`

	// SuperRoleModule is the module granted implicitly to SuperRole holders.
	SuperRoleModule string `mapstructure:"super_role_module"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 5
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 5
	}
}

// PrincipalSummary is the caller-facing slice of a principal.
type PrincipalSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is the result of a successful authentication.
type Session struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	Principal    PrincipalSummary `json:"principal"`
}

// Deps are the collaborators the issuer orchestrates. All are required.
type Deps struct {
	Directory Directory
	Hasher    password.Hasher
	Throttle  throttle.Throttle
	Tokens    refresh.Store
	Resolver  entitlement.Resolver
	Signer    *jwt.Service[*AccessClaims]
	Logger    *logger.Logger
}

// Issuer is the only component callers use for login and refresh.
type Issuer struct {
	cfg      Config
	dir      Directory
	hasher   password.Hasher
	throttle throttle.Throttle
	tokens   refresh.Store
	resolver entitlement.Resolver
	signer   *jwt.Service[*AccessClaims]
	log      *logger.Logger
	tracer   trace.Tracer

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// New creates a token issuer.
func New(cfg Config, deps Deps) *Issuer {
	cfg.ApplyDefaults()
	return &Issuer{
		cfg:      cfg,
		dir:      deps.Directory,
		hasher:   deps.Hasher,
		throttle: deps.Throttle,
		tokens:   deps.Tokens,
		resolver: deps.Resolver,
		signer:   deps.Signer,
		log:      deps.Logger.WithComponent("issuer"),
		tracer:   otel.Tracer("authcore/issuer"),
		sleep:    contextSleep,
		now:      time.Now,
	}
}

// Authenticate verifies the identity/secret pair and returns a new session.
//
// Failures are deliberately coarse: a blank input is INVALID_INPUT, a
// rate-limited identity is TOO_MANY_ATTEMPTS, and everything else — unknown
// identity or wrong secret alike — is the one generic INVALID_CREDENTIALS.
// An unreachable throttle backend fails closed with DEPENDENCY_UNAVAILABLE.
func (i *Issuer) Authenticate(ctx context.Context, identity, secret string) (*Session, error) {
	ctx, span := i.tracer.Start(ctx, "issuer.Authenticate")
	defer span.End()

	identity = normalizeIdentity(identity)
	if identity == "" {
		return nil, errors.MissingField("identity")
	}
	if strings.TrimSpace(secret) == "" {
		return nil, errors.MissingField("secret")
	}

	count, err := i.throttle.Count(ctx, identity)
	if err != nil {
		// Fail closed: no rate limiting means no authentication.
		return nil, errors.DependencyUnavailable("attempt throttle", err)
	}
	if count >= i.cfg.MaxAttempts {
		span.SetAttributes(attribute.String("auth.outcome", "throttled"))
		i.log.Warn("authentication throttled", logger.Fields(logger.FieldAttempts, count))
		return nil, errors.TooManyAttempts()
	}

	principal, err := i.dir.FindByEmail(ctx, identity)
	if err != nil {
		if stderrors.Is(err, ErrPrincipalNotFound) {
			span.SetAttributes(attribute.String("auth.outcome", "rejected"))
			return nil, i.failAttempt(ctx, identity)
		}
		return nil, errors.DependencyUnavailable("user directory", err)
	}

	// The hash always runs to completion; only the post-failure delay is
	// cancellable.
	if !i.hasher.Verify(secret, principal.CredentialHash) {
		span.SetAttributes(attribute.String("auth.outcome", "rejected"))
		return nil, i.failAttempt(ctx, identity)
	}

	if err := i.throttle.Reset(ctx, identity); err != nil {
		return nil, errors.DependencyUnavailable("attempt throttle", err)
	}

	session, err := i.openSession(ctx, principal)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("auth.outcome", "issued"))
	i.log.Info("session issued", logger.Fields(
		logger.FieldSubjectID, principal.ID,
		logger.FieldTenantID, principal.TenantID,
	))
	return session, nil
}

// Refresh exchanges a valid refresh token for a new access token.
// Entitlements are resolved afresh, so the new token reflects the
// principal's current roles and modules, not those at original issuance.
//
// The presented refresh token is NOT rotated: it stays valid until natural
// expiry or explicit invalidation. Rotating here would change the external
// contract (the old value would stop validating).
func (i *Issuer) Refresh(ctx context.Context, subjectID, presented string) (string, error) {
	ctx, span := i.tracer.Start(ctx, "issuer.Refresh")
	defer span.End()

	if strings.TrimSpace(subjectID) == "" {
		return "", errors.MissingField("subjectId")
	}
	if strings.TrimSpace(presented) == "" {
		return "", errors.MissingField("refreshToken")
	}

	ok, err := i.tokens.Validate(ctx, subjectID, presented)
	if err != nil {
		return "", errors.DependencyUnavailable("refresh token store", err)
	}
	if !ok {
		span.SetAttributes(attribute.String("auth.outcome", "rejected"))
		return "", errors.TokenInvalid()
	}

	principal, err := i.dir.FindByID(ctx, subjectID)
	if err != nil {
		if stderrors.Is(err, ErrPrincipalNotFound) {
			return "", errors.TokenInvalid()
		}
		return "", errors.DependencyUnavailable("user directory", err)
	}

	accessToken, err := i.issueAccessToken(ctx, principal)
	if err != nil {
		return "", err
	}

	span.SetAttributes(attribute.String("auth.outcome", "issued"))
	i.log.Info("access token refreshed", logger.Fields(logger.FieldSubjectID, subjectID))
	return accessToken, nil
}

// Logout revokes the presented refresh token. Idempotent; an unknown value
// is a no-op.
func (i *Issuer) Logout(ctx context.Context, presented string) error {
	if strings.TrimSpace(presented) == "" {
		return errors.MissingField("refreshToken")
	}
	if err := i.tokens.Invalidate(ctx, presented); err != nil {
		return errors.DependencyUnavailable("refresh token store", err)
	}
	return nil
}

// --- internals ---

// failAttempt records a failure, applies the escalating delay, and returns
// the generic credential error. The delay is min(count, MaxDelay) seconds
// and is cancellable by the caller's context.
func (i *Issuer) failAttempt(ctx context.Context, identity string) error {
	count, err := i.throttle.Increment(ctx, identity)
	if err != nil {
		return errors.DependencyUnavailable("attempt throttle", err)
	}

	delay := count
	if delay > i.cfg.MaxDelay {
		delay = i.cfg.MaxDelay
	}
	if err := i.sleep(ctx, time.Duration(delay)*time.Second); err != nil {
		return err
	}

	i.log.Warn("authentication rejected", logger.Fields(logger.FieldAttempts, count))
	return errors.InvalidCredentials()
}

// openSession resolves entitlements, signs the access token, and issues the
// refresh token.
func (i *Issuer) openSession(ctx context.Context, principal *Principal) (*Session, error) {
	accessToken, err := i.issueAccessToken(ctx, principal)
	if err != nil {
		return nil, err
	}

	refreshToken, err := i.tokens.Issue(ctx, principal.ID)
	if err != nil {
		return nil, errors.DependencyUnavailable("refresh token store", err)
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Value,
		Principal: PrincipalSummary{
			ID:    principal.ID,
			Email: principal.Email,
			Name:  principal.Name,
		},
	}, nil
}

func (i *Issuer) issueAccessToken(ctx context.Context, principal *Principal) (string, error) {
	// A resolver failure is fatal for issuance; it is never treated as
	// "no entitlements".
	result, err := i.resolver.Resolve(ctx, principal.ID, principal.TenantID)
	if err != nil {
		return "", errors.DependencyUnavailable("entitlement resolver", err)
	}

	return i.signer.Sign(i.buildClaims(principal, result))
}

// normalizeIdentity folds the login handle to its canonical form: trimmed
// and lowercased. This happens once, here; stores receive the normalized key.
func normalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

// contextSleep waits for d or until the context is canceled.
func contextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
