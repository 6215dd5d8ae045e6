package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
)

func TestAuth(t *testing.T) {
	var gotActor domain.Actor
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor, _ = GetActor(r.Context())
		called = true
	})

	t.Run("заголовки транслируются в пользователя", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-ID", "42")
		req.Header.Set("X-User-Role", "admin")
		rec := httptest.NewRecorder()

		Auth(next).ServeHTTP(rec, req)

		require.True(t, called)
		assert.Equal(t, int64(42), gotActor.UserID)
		assert.Equal(t, domain.RoleAdmin, gotActor.Role)
	})

	t.Run("роль по умолчанию carrier", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-ID", "7")
		rec := httptest.NewRecorder()

		Auth(next).ServeHTTP(rec, req)

		require.True(t, called)
		assert.Equal(t, domain.RoleCarrier, gotActor.Role)
	})

	t.Run("без X-User-ID запрос отклоняется", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		Auth(next).ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("некорректный ID отклоняется", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-ID", "abc")
		rec := httptest.NewRecorder()

		Auth(next).ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("неизвестная роль отклоняется", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-ID", "7")
		req.Header.Set("X-User-Role", "manager")
		rec := httptest.NewRecorder()

		Auth(next).ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequestID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, ok := GetRequestID(r.Context())
		require.True(t, ok)
		assert.NotEmpty(t, requestID)
	})

	t.Run("внешний идентификатор сохраняется", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")
		rec := httptest.NewRecorder()

		RequestID(next).ServeHTTP(rec, req)

		assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("идентификатор генерируется при отсутствии", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		RequestID(next).ServeHTTP(rec, req)

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})
}
