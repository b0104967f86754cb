package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dlazarev-dev/TPS-SchedulingService/internal/api/handlers"
)

type contextKey string

const adminIDKey contextKey = "adminID"

const msgMissingAdminID = "требуется заголовок X-Admin-ID"

// Auth проверяет наличие заголовка X-Admin-ID и кладет его значение в контекст.
// Выпуск сессий выполняет внешний сервис, здесь только проверка идентификатора.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminIDStr := r.Header.Get("X-Admin-ID")
		if adminIDStr == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingAdminID)
			return
		}

		adminID, err := strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil || adminID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingAdminID)
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminIDFromContext возвращает ID админа, положенный Auth middleware
func AdminIDFromContext(ctx context.Context) (int64, bool) {
	adminID, ok := ctx.Value(adminIDKey).(int64)
	return adminID, ok
}
