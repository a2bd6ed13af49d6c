// Package auth emite y verifica los tokens JWT del API.
// Hay dos tipos de token: access (corto) y refresh (largo). Ambos viajan en
// cookies HTTPOnly y también se aceptan por header Authorization: Bearer.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessCookieName  = "access_token_cookie"
	RefreshCookieName = "refresh_token_cookie"
)

var (
	ErrTokenInvalid = errors.New("token inválido")
	ErrTokenExpired = errors.New("token expirado")
	ErrWrongType    = errors.New("tipo de token incorrecto")
)

// Claims es la información del usuario embebida en el token.
type Claims struct {
	UserID         int
	Identification int64
	Fullname       string
	Role           string
	TokenType      string
}

type jwtClaims struct {
	jwt.RegisteredClaims
	Identification int64  `json:"identification"`
	Fullname       string `json:"fullname"`
	Role           string `json:"role"`
	TokenType      string `json:"type"`
}

type Options struct {
	Secret       string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	CookieDomain string
	CookieSecure bool
}

type Manager struct {
	secret       []byte
	accessTTL    time.Duration
	refreshTTL   time.Duration
	cookieDomain string
	cookieSecure bool
	now          func() time.Time
}

func NewManager(opts Options) *Manager {
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = time.Hour
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = 30 * 24 * time.Hour
	}
	return &Manager{
		secret:       []byte(opts.Secret),
		accessTTL:    opts.AccessTTL,
		refreshTTL:   opts.RefreshTTL,
		cookieDomain: opts.CookieDomain,
		cookieSecure: opts.CookieSecure,
		now:          time.Now,
	}
}

// IssueAccess genera el token de acceso de corta duración.
func (m *Manager) IssueAccess(c Claims) (string, error) {
	return m.issue(c, TokenTypeAccess, m.accessTTL)
}

// IssueRefresh genera el token de renovación.
func (m *Manager) IssueRefresh(c Claims) (string, error) {
	return m.issue(c, TokenTypeRefresh, m.refreshTTL)
}

func (m *Manager) issue(c Claims, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.Itoa(c.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Identification: c.Identification,
		Fullname:       c.Fullname,
		Role:           c.Role,
		TokenType:      tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("firmando token: %w", err)
	}
	return signed, nil
}

// Verify valida firma, expiración y tipo del token.
func (m *Manager) Verify(tokenString, wantType string) (Claims, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !token.Valid {
		return Claims{}, ErrTokenInvalid
	}
	if claims.TokenType != wantType {
		return Claims{}, ErrWrongType
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return Claims{}, ErrTokenInvalid
	}

	return Claims{
		UserID:         userID,
		Identification: claims.Identification,
		Fullname:       claims.Fullname,
		Role:           claims.Role,
		TokenType:      claims.TokenType,
	}, nil
}

// SetAuthCookies instala ambos tokens como cookies HTTPOnly.
func (m *Manager) SetAuthCookies(w http.ResponseWriter, access, refresh string) {
	http.SetCookie(w, m.cookie(AccessCookieName, access, m.accessTTL))
	http.SetCookie(w, m.cookie(RefreshCookieName, refresh, m.refreshTTL))
}

// SetAccessCookie reinstala solo el access token (flujo de refresh).
func (m *Manager) SetAccessCookie(w http.ResponseWriter, access string) {
	http.SetCookie(w, m.cookie(AccessCookieName, access, m.accessTTL))
}

// ClearAuthCookies borra las cookies de sesión (logout).
func (m *Manager) ClearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(AccessCookieName, "", -time.Hour))
	http.SetCookie(w, m.cookie(RefreshCookieName, "", -time.Hour))
}

func (m *Manager) cookie(name, value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.cookieDomain,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		c.MaxAge = int(ttl.Seconds())
	} else {
		c.MaxAge = -1
	}
	return c
}

// TokenFromRequest busca el token primero en Authorization: Bearer
// y después en la cookie indicada.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if h := strings.TrimSpace(r.Header.Get("Authorization")); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
