package utils

import "context"

type contextKey string

const (
	ContextKeyOperator      contextKey = "operator"
	ContextKeyCorrelationId contextKey = "correlation_id"
)

func getString(ctx context.Context, key contextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	return v, ok
}

func GetOperatorFromContext(ctx context.Context) (string, bool) {
	return getString(ctx, ContextKeyOperator)
}

func SetOperatorInContext(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, ContextKeyOperator, operator)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return getString(ctx, ContextKeyCorrelationId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return context.WithValue(ctx, ContextKeyCorrelationId, correlationId)
}
