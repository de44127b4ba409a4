package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"prepwise/server/internal/models"
)

// SessionCookieName is the cookie the browser carries the session in.
const SessionCookieName = "session"

var (
	ErrNoSession      = errors.New("no session found")
	ErrInvalidSession = errors.New("invalid or expired session")
)

var parseJWT = func(tokenStr string, keyFunc jwt.Keyfunc) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, keyFunc)
}

// Verifier mints and verifies session credentials. Every Verify call
// re-checks the signature and expiry; there is no cache and no
// revocation list.
type Verifier struct {
	secret []byte
	ttl    time.Duration
}

func NewVerifier(secret string, ttl time.Duration) *Verifier {
	return &Verifier{secret: []byte(secret), ttl: ttl}
}

// Mint issues a signed session credential for the principal.
func (v *Verifier) Mint(p *models.Principal) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":            p.UserID,
		"email":          p.Email,
		"email_verified": p.EmailVerified,
		"iat":            now.Unix(),
		"exp":            now.Add(v.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// Verify validates a session credential and resolves its principal.
func (v *Verifier) Verify(credential string) (*models.Principal, error) {
	if credential == "" {
		return nil, ErrNoSession
	}

	token, err := parseJWT(credential, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrInvalidSession
	}

	p := &models.Principal{UserID: sub}
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		p.EmailVerified = verified
	}
	return p, nil
}

// VerifyRequest resolves the principal from the request's session cookie.
func (v *Verifier) VerifyRequest(r *http.Request) (*models.Principal, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, ErrNoSession
	}
	return v.Verify(cookie.Value)
}

// SessionCookie builds the Set-Cookie value carrying a minted session.
func (v *Verifier) SessionCookie(value string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(v.ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie builds the Set-Cookie value that removes a session.
func ClearSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
