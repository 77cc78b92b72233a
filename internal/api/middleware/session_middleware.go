package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/shopcart/internal/api"
	"github.com/RoyceAzure/lab/shopcart/internal/constants"
	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcart/internal/service"
	"github.com/RoyceAzure/lab/shopcart/internal/util"
)

// SessionMiddleware 解析session cookie並將身份放進request context
// 沒有cookie或session過期不在這裡擋，由AuthMiddleware決定
func SessionMiddleware(sessionService service.ISessionService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := sessionService.GetIdentity(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, redis_repo.ErrSessionNotFound) {
					api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to resolve session")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), constants.SessionIDKey, cookie.Value)
			ctx = context.WithValue(ctx, constants.IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthMiddleware 驗證request context內是否有已解析的身份
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.GetIdentityFromContext(r.Context()) == nil {
			api.ErrorJSON(w, http.StatusUnauthorized, nil, "please login to continue")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAccessLevel 角色檢查，不符直接403
func RequireAccessLevel(level model.AccessLevel) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := util.GetIdentityFromContext(r.Context())
			if identity == nil {
				api.ErrorJSON(w, http.StatusUnauthorized, nil, "please login to continue")
				return
			}
			if identity.AccessLevel != level {
				api.ErrorJSON(w, http.StatusForbidden, nil, "insufficient access level")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BarAccessLevels 禁止特定角色
// 購物車與結帳對admin/fulfillment關閉
func BarAccessLevels(levels ...model.AccessLevel) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := util.GetIdentityFromContext(r.Context())
			if identity == nil {
				api.ErrorJSON(w, http.StatusUnauthorized, nil, "please login to continue")
				return
			}
			for _, level := range levels {
				if identity.AccessLevel == level {
					api.ErrorJSON(w, http.StatusForbidden, nil, "this operation is not available for your role")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
