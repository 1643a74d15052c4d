package identity

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/fastygo/taskbuddy/domain"
)

// Credential is what the client obtained from the hosted sign-in popup.
type Credential struct {
	IDToken string
	Origin  string
}

// Provider is the hosted identity boundary. Failures are UNAUTHORIZED domain errors.
type Provider interface {
	SignIn(ctx context.Context, cred Credential) (domain.Identity, error)
	SignOut(ctx context.Context, uid string) error
}

type Config struct {
	Secret            string
	Issuer            string
	AuthorizedDomains []string
}

// Claims are the ID token fields we read; nothing else is inspected.
type Claims struct {
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	Email   string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTProvider verifies HS256 ID tokens minted by the hosted provider.
type JWTProvider struct {
	secret  []byte
	issuer  string
	domains map[string]struct{}
}

func NewJWTProvider(cfg Config) *JWTProvider {
	domains := make(map[string]struct{}, len(cfg.AuthorizedDomains))
	for _, d := range cfg.AuthorizedDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			domains[d] = struct{}{}
		}
	}
	return &JWTProvider{
		secret:  []byte(cfg.Secret),
		issuer:  cfg.Issuer,
		domains: domains,
	}
}

func (p *JWTProvider) SignIn(ctx context.Context, cred Credential) (domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, err
	}
	if len(p.secret) == 0 {
		return domain.Identity{}, domain.ErrProviderNotConfigured
	}

	if host, ok := p.authorized(cred.Origin); !ok {
		return domain.Identity{}, domain.WrapError(domain.ErrCodeUnauthorized,
			fmt.Sprintf("This domain is not authorized for authentication. Please add %s to the authorized domains.", host),
			domain.ErrUnauthorizedHost)
	}

	if strings.TrimSpace(cred.IDToken) == "" {
		return domain.Identity{}, domain.NewError(domain.ErrCodeUnauthorized, "missing identity token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(cred.IDToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Identity{}, domain.WrapError(domain.ErrCodeUnauthorized, "invalid identity token", err)
	}

	if p.issuer != "" && !claims.VerifyIssuer(p.issuer, true) {
		return domain.Identity{}, domain.NewError(domain.ErrCodeUnauthorized, "unexpected token issuer")
	}
	if claims.Subject == "" {
		return domain.Identity{}, domain.NewError(domain.ErrCodeUnauthorized, "identity token has no subject")
	}

	name := claims.Name
	if name == "" {
		name = claims.Email
	}
	return domain.Identity{
		UID:         claims.Subject,
		DisplayName: name,
		PhotoURL:    claims.Picture,
	}, nil
}

// SignOut has nothing to revoke: tokens are verified once and never kept.
func (p *JWTProvider) SignOut(ctx context.Context, uid string) error {
	return ctx.Err()
}

func (p *JWTProvider) authorized(origin string) (string, bool) {
	host := hostOf(origin)
	if len(p.domains) == 0 {
		return host, true
	}
	_, ok := p.domains[host]
	return host, ok
}

func hostOf(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ""
	}
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		return strings.ToLower(u.Hostname())
	}
	if i := strings.IndexByte(origin, ':'); i >= 0 {
		origin = origin[:i]
	}
	return strings.ToLower(origin)
}

var _ Provider = (*JWTProvider)(nil)
