package context

import (
	"context"

	"github.com/muhammadheryan/runhub-checkout/constant"
)

func GetUserID(ctx context.Context) (string, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, constant.UserIDKey, userID)
}
