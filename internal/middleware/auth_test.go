package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoUID отвечает 200 и user_id из контекста либо 204, если пользователь анонимный.
func echoUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := GetUserIDFromContext(r.Context()); ok {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(strconv.FormatInt(uid, 10)))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestIssueAndParseToken(t *testing.T) {
	tok, err := IssueToken(42, "s", time.Hour)
	require.NoError(t, err)

	uid, err := ParseToken(tok, "s")
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)

	_, err = ParseToken(tok, "other")
	assert.Error(t, err)

	expired, err := IssueToken(42, "s", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, "s")
	assert.Error(t, err)
}

// Тест: Bearer-заголовок, user_id попадает в контекст
func TestWithAuth_BearerHeader(t *testing.T) {
	tok, err := IssueToken(7, "test-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	WithAuth("test-secret")(echoUID()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "7", rr.Body.String())
}

// Тест: SetLoginCookie + WithAuth: cookie работает без заголовка
func TestWithAuth_ValidCookieSetsUserID(t *testing.T) {
	tok, err := IssueToken(77, "test-secret", time.Hour)
	require.NoError(t, err)

	rrCookie := httptest.NewRecorder()
	SetLoginCookie(rrCookie, tok, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rrCookie.Result().Cookies() {
		assert.Equal(t, CookieName, c.Name)
		assert.True(t, c.HttpOnly)
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	WithAuth("test-secret")(echoUID()).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "77", rr.Body.String())
}

// Тест: без токена и с чужой подписью запрос остаётся анонимным
func TestWithAuth_AnonymousCases(t *testing.T) {
	foreign, err := IssueToken(5, "secret-A", time.Hour)
	require.NoError(t, err)

	cases := map[string]func(r *http.Request){
		"no token":       func(r *http.Request) {},
		"foreign secret": func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+foreign) },
		"garbage":        func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"}) },
		"not bearer":     func(r *http.Request) { r.Header.Set("Authorization", "Basic Zm9vOmJhcg==") },
	}
	for name, prepare := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			prepare(req)
			rr := httptest.NewRecorder()
			WithAuth("secret-B")(echoUID()).ServeHTTP(rr, req)
			assert.Equal(t, http.StatusNoContent, rr.Code)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	unauthorized := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	h := RequireAuth(unauthorized)(echoUID())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserID(req.Context(), 3))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "3", rr.Body.String())
}
