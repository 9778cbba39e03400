package api

type ContextKey string

var (
	RunIDCtxKey ContextKey = "runID"
)
