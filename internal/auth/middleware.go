package auth

import (
	"context"
	"net/http"
	"strings"

	"formcraft/form-builder-backend/internal"
	"formcraft/form-builder-backend/internal/business"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const Issuer = "form-builder"

// BusinessStore resolves the token subject to an owning business. Account
// registration and token issuance live outside this service; the middleware
// only verifies tokens minted by that collaborator.
type BusinessStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (business.Business, error)
}

type Middleware struct {
	logger        *zap.Logger
	tracer        trace.Tracer
	problemWriter *problem.HttpWriter
	secret        string
	businessStore BusinessStore
}

func NewMiddleware(logger *zap.Logger, problemWriter *problem.HttpWriter, secret string, businessStore BusinessStore) *Middleware {
	return &Middleware{
		logger:        logger,
		tracer:        otel.Tracer("auth/middleware"),
		problemWriter: problemWriter,
		secret:        secret,
		businessStore: businessStore,
	}
}

func (m *Middleware) AuthenticateMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traceCtx, span := m.tracer.Start(r.Context(), "AuthenticateMiddleware")
		defer span.End()
		logger := logutil.WithContext(traceCtx, m.logger)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.problemWriter.WriteError(traceCtx, w, internal.ErrMissingAuthHeader, logger)
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			m.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidAuthHeaderFormat, logger)
			return
		}

		businessID, err := m.parse(tokenString)
		if err != nil {
			logger.Debug("Failed to parse access token", zap.Error(err))
			m.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidJWTToken, logger)
			return
		}

		currentBusiness, err := m.businessStore.GetByID(traceCtx, businessID)
		if err != nil {
			span.RecordError(err)
			m.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidJWTToken, logger)
			return
		}

		ctx := context.WithValue(traceCtx, internal.BusinessContextKey, currentBusiness)
		next(w, r.WithContext(ctx))
	}
}

func (m *Middleware) parse(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal.ErrInvalidJWTToken
		}
		return []byte(m.secret), nil
	}, jwt.WithIssuer(Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}

	businessID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, internal.ErrInvalidJWTToken
	}

	return businessID, nil
}

// GetFromContext returns the authenticated business stored by the middleware.
func GetFromContext(ctx context.Context) (business.Business, bool) {
	b, ok := ctx.Value(internal.BusinessContextKey).(business.Business)
	return b, ok
}
