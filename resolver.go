package blog

import "strings"

const (
	// HeaderAuthorization is the request header carrying the bearer token
	HeaderAuthorization = "Authorization"

	// BearerScheme is the token scheme prefix. The trailing space is part of
	// the scheme; "Bearer" alone does not carry a token.
	BearerScheme = "Bearer "
)

// IdentityResolver turns an Authorization header value into an Identity.
type IdentityResolver struct {
	tokens TokenService
	logger Logger
}

// NewIdentityResolver creates a resolver backed by the given token service
func NewIdentityResolver(tokens TokenService) *IdentityResolver {
	return &IdentityResolver{
		tokens: tokens,
		logger: defLogger{},
	}
}

func (r *IdentityResolver) WithLogger(logger Logger) *IdentityResolver {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// ResolveRequired returns the identity carried by the header or fails with a
// typed token error: ErrTokenMissing for an absent or non-bearer header,
// ErrTokenExpired and ErrTokenMalformed from validation.
func (r *IdentityResolver) ResolveRequired(header string) (Identity, error) {
	raw, err := TokenFromHeader(header)
	if err != nil {
		return Identity{}, err
	}

	claims, err := r.tokens.Validate(raw)
	if err != nil {
		return Identity{}, err
	}

	return claims.Identity(), nil
}

// ResolveOptional degrades to anonymous (nil identity, nil error) when the
// header is absent or unusable. An expired token still fails: the client
// thinks it is signed in and should be told otherwise.
func (r *IdentityResolver) ResolveOptional(header string) (*Identity, error) {
	if header == "" {
		return nil, nil
	}

	raw, err := TokenFromHeader(header)
	if err != nil {
		return nil, nil
	}

	claims, err := r.tokens.Validate(raw)
	if err != nil {
		if IsTokenExpiredError(err) {
			return nil, err
		}
		r.logger.Info("optional auth token dropped, proceeding anonymously", "error", err)
		return nil, nil
	}

	identity := claims.Identity()
	return &identity, nil
}

// TokenFromHeader strips the bearer scheme from an Authorization header
// value. The match is exact and case sensitive.
func TokenFromHeader(header string) (string, error) {
	if !strings.HasPrefix(header, BearerScheme) {
		return "", ErrTokenMissing
	}

	token := strings.TrimSpace(header[len(BearerScheme):])
	if token == "" {
		return "", ErrTokenMissing
	}

	return token, nil
}
