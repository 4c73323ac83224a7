package requestdata

import (
	"context"

	"github.com/google/uuid"
)

var requestDataKey = struct{}{}

type RequestData struct {
	TokenString  string
	RefreshToken string
	UserID       uuid.UUID
	IsStaff      bool
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}

// Authenticated reports whether the context carries a real user identity.
// Layout reads and writes short-circuit to an empty result without it.
func Authenticated(ctx context.Context) bool {
	rd := GetRequestData(ctx)
	return rd != nil && rd.UserID != uuid.Nil
}
