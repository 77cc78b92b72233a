package util

import (
	"context"

	"github.com/RoyceAzure/lab/shopcart/internal/constants"
	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
)

// GetIdentityFromContext 從請求上下文取得已驗證身份
// 未登入回傳nil
func GetIdentityFromContext(ctx context.Context) *model.Identity {
	if v := ctx.Value(constants.IdentityKey); v != nil {
		return v.(*model.Identity)
	}
	return nil
}

// GetSessionIDFromContext 從請求上下文取得session id
func GetSessionIDFromContext(ctx context.Context) string {
	if v := ctx.Value(constants.SessionIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func GetRequestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(constants.RequestIDKey); v != nil {
		return v.(string)
	}
	return "unknown"
}
