package blog

import (
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RouteAuthenticator attaches the resolved identity to requests and rejects
// the ones that fail authentication.
type RouteAuthenticator struct {
	resolver   *IdentityResolver
	contextKey string
	Logger     Logger
}

func NewHTTPAuthenticator(resolver *IdentityResolver, cfg Config) *RouteAuthenticator {
	contextKey := cfg.GetContextKey()
	if contextKey == "" {
		contextKey = "user"
	}

	return &RouteAuthenticator{
		resolver:   resolver,
		contextKey: contextKey,
		Logger:     defLogger{},
	}
}

func (a *RouteAuthenticator) WithLogger(logger Logger) *RouteAuthenticator {
	if logger != nil {
		a.Logger = logger
	}
	return a
}

// ContextKey is the router locals key the resolved identity is stored under
func (a *RouteAuthenticator) ContextKey() string {
	return a.contextKey
}

// Protected rejects the request unless it carries a valid bearer token.
// The identity lands in the router locals and the request context.
func (a *RouteAuthenticator) Protected() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			identity, err := a.resolver.ResolveRequired(ctx.GetString(HeaderAuthorization, ""))
			if err != nil {
				return WriteError(ctx, a.Logger, err)
			}

			ctx.Locals(a.contextKey, &identity)
			ctx.SetContext(WithIdentityContext(ctx.Context(), identity))

			return next(ctx)
		}
	}
}

// OptionalIdentity resolves the viewer when a usable token is present and
// leaves the request anonymous otherwise. Expired tokens still fail.
func (a *RouteAuthenticator) OptionalIdentity() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			identity, err := a.resolver.ResolveOptional(ctx.GetString(HeaderAuthorization, ""))
			if err != nil {
				return WriteError(ctx, a.Logger, err)
			}

			if identity != nil {
				ctx.Locals(a.contextKey, identity)
				ctx.SetContext(WithIdentityContext(ctx.Context(), *identity))
			}

			return next(ctx)
		}
	}
}

// WriteError maps a failure to its HTTP status and writes the response
// envelope. Errors without an explicit code fall back to their category.
func WriteError(ctx router.Context, logger Logger, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := richErr.Code
	if status == 0 {
		status = statusForCategory(richErr.Category)
	}

	if logger != nil {
		logger.Info(
			"request failed",
			"status", status,
			"category", richErr.Category,
			"error", richErr.Message,
			"details", print.MaybePrettyJSON(richErr.Metadata),
		)
	}

	return ctx.JSON(status, failure(status, richErr.Message))
}

func statusForCategory(category errors.Category) int {
	switch category {
	case errors.CategoryAuth:
		return errors.CodeUnauthorized
	case errors.CategoryAuthz:
		return errors.CodeForbidden
	case errors.CategoryNotFound:
		return errors.CodeNotFound
	case errors.CategoryValidation, errors.CategoryBadInput, errors.CategoryConflict:
		return errors.CodeBadRequest
	default:
		return errors.CodeInternal
	}
}
