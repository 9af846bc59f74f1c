package handlers

import "context"

type contextKey string

const ownerIDKey contextKey = "owner_id"

func WithOwnerID(ctx context.Context, ownerID int) context.Context {
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

func OwnerIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(ownerIDKey).(int)
	return id, ok && id > 0
}
