package internal

type contextKey string

// BusinessContextKey carries the authenticated business through request context.
const BusinessContextKey contextKey = "business"
