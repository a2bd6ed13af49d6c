package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestManager() *Manager {
	return NewManager(Options{
		Secret:     "secreto-de-prueba",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
}

func testClaims() Claims {
	return Claims{
		UserID:         7,
		Identification: 1001,
		Fullname:       "María Gómez",
		Role:           "Administrador",
	}
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager()

	token, err := m.IssueAccess(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := m.Verify(token, TokenTypeAccess)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.UserID != 7 || got.Identification != 1001 || got.Role != "Administrador" {
		t.Errorf("claims inesperados: %+v", got)
	}
	if got.TokenType != TokenTypeAccess {
		t.Errorf("tipo inesperado: %q", got.TokenType)
	}
}

func TestVerify_WrongType(t *testing.T) {
	m := newTestManager()

	refresh, err := m.IssueRefresh(testClaims())
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	if _, err := m.Verify(refresh, TokenTypeAccess); !errors.Is(err, ErrWrongType) {
		t.Fatalf("se esperaba ErrWrongType, llegó %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	m := newTestManager()

	token, err := m.IssueAccess(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tampered := token + "x"
	if _, err := m.Verify(tampered, TokenTypeAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("se esperaba ErrTokenInvalid, llegó %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager(Options{Secret: "otro-secreto"})

	token, err := m.IssueAccess(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := other.Verify(token, TokenTypeAccess); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("se esperaba ErrTokenInvalid, llegó %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	m := newTestManager()

	issued := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.IssueAccess(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.now = func() time.Time { return issued.Add(time.Hour) }
	if _, err := m.Verify(token, TokenTypeAccess); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("se esperaba ErrTokenExpired, llegó %v", err)
	}
}

func TestTokenFromRequest_BearerWinsOverCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer token-header")
	r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "token-cookie"})

	if got := TokenFromRequest(r, AccessCookieName); got != "token-header" {
		t.Fatalf("el header debe tener prioridad, llegó %q", got)
	}
}

func TestTokenFromRequest_Cookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "token-cookie"})

	if got := TokenFromRequest(r, AccessCookieName); got != "token-cookie" {
		t.Fatalf("token inesperado: %q", got)
	}
}

func TestTokenFromRequest_Empty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	if got := TokenFromRequest(r, AccessCookieName); got != "" {
		t.Fatalf("se esperaba vacío, llegó %q", got)
	}
}

func TestClearAuthCookies(t *testing.T) {
	m := newTestManager()
	w := httptest.NewRecorder()

	m.ClearAuthCookies(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("se esperaban 2 cookies, llegaron %d", len(cookies))
	}
	for _, c := range cookies {
		if c.MaxAge != -1 {
			t.Errorf("la cookie %q debía expirar (MaxAge=-1), llegó %d", c.Name, c.MaxAge)
		}
		if c.Value != "" {
			t.Errorf("la cookie %q debía quedar vacía", c.Name)
		}
	}
}
