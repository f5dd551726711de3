package blog_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockConfig implements blog.Config
type MockConfig struct {
	mock.Mock
}

func (m *MockConfig) GetSigningKey() string {
	return m.Called().String(0)
}

func (m *MockConfig) GetContextKey() string {
	return m.Called().String(0)
}

func (m *MockConfig) GetTokenExpiration() int {
	return m.Called().Int(0)
}

type quietLogger struct{}

func (quietLogger) Debug(string, ...any) {}
func (quietLogger) Info(string, ...any)  {}
func (quietLogger) Error(string, ...any) {}

// recordingContext captures the response side of the router context so tests
// can inspect what a handler wrote.
type recordingContext struct {
	*router.MockContext
	reqCtx     context.Context
	body       any
	status     int
	payload    any
	jsonCalled bool
	headers    map[string]string
}

func newRecordingContext() *recordingContext {
	return &recordingContext{
		MockContext: router.NewMockContext(),
		reqCtx:      context.Background(),
		headers:     map[string]string{},
	}
}

func (m *recordingContext) Context() context.Context {
	return m.reqCtx
}

func (m *recordingContext) SetContext(ctx context.Context) {
	m.reqCtx = ctx
}

func (m *recordingContext) JSON(status int, val any) error {
	m.jsonCalled = true
	m.status = status
	m.payload = val
	return nil
}

func (m *recordingContext) SetHeader(key, val string) router.Context {
	m.headers[key] = val
	return m
}

func (m *recordingContext) Bind(v any) error {
	if m.body == nil {
		return nil
	}
	raw, err := json.Marshal(m.body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func envelope(t *testing.T, ctx *recordingContext) string {
	t.Helper()
	raw, err := json.Marshal(ctx.payload)
	require.NoError(t, err)
	return string(raw)
}

func newAutherFixture(t *testing.T) (*blog.RouteAuthenticator, blog.TokenService) {
	t.Helper()

	tokens := blog.NewTokenService([]byte("http-test-key"), 1, quietLogger{})
	resolver := blog.NewIdentityResolver(tokens).WithLogger(quietLogger{})

	cfg := new(MockConfig)
	cfg.On("GetContextKey").Return("user")

	auther := blog.NewHTTPAuthenticator(resolver, cfg).WithLogger(quietLogger{})
	return auther, tokens
}

func TestRouteAuthenticator_Protected(t *testing.T) {
	auther, tokens := newAutherFixture(t)
	alice := blog.Identity{ID: 1, Username: "alice"}

	t.Run("valid token reaches the handler with the identity attached", func(t *testing.T) {
		ctx := newRecordingContext()
		ctx.On("GetString", blog.HeaderAuthorization, "").Return(bearerFor(t, tokens, alice))
		ctx.On("Locals", "user", mock.AnythingOfType("*blog.Identity")).Return(nil)

		var seen blog.Identity
		var ok bool
		handler := auther.Protected()(func(c router.Context) error {
			seen, ok = blog.IdentityFromContext(c.Context())
			return nil
		})

		require.NoError(t, handler(ctx))
		require.True(t, ok)
		assert.Equal(t, alice, seen)
		assert.False(t, ctx.jsonCalled)
	})

	t.Run("missing header answers 401 and stops the chain", func(t *testing.T) {
		ctx := newRecordingContext()
		ctx.On("GetString", blog.HeaderAuthorization, "").Return("")

		nextCalled := false
		handler := auther.Protected()(func(router.Context) error {
			nextCalled = true
			return nil
		})

		require.NoError(t, handler(ctx))
		assert.False(t, nextCalled)
		assert.Equal(t, 401, ctx.status)
		assert.JSONEq(t, `{"status":401,"msg":"authentication token required","body":null}`, envelope(t, ctx))
	})

	t.Run("expired token answers 401", func(t *testing.T) {
		ctx := newRecordingContext()
		ctx.On("GetString", blog.HeaderAuthorization, "").Return(expiredBearer(t, tokens))

		nextCalled := false
		handler := auther.Protected()(func(router.Context) error {
			nextCalled = true
			return nil
		})

		require.NoError(t, handler(ctx))
		assert.False(t, nextCalled)
		assert.Equal(t, 401, ctx.status)
		assert.JSONEq(t, `{"status":401,"msg":"authentication token is expired","body":null}`, envelope(t, ctx))
	})

	t.Run("malformed token answers 401", func(t *testing.T) {
		ctx := newRecordingContext()
		ctx.On("GetString", blog.HeaderAuthorization, "").Return(blog.BearerScheme + "garbage")

		nextCalled := false
		handler := auther.Protected()(func(router.Context) error {
			nextCalled = true
			return nil
		})

		require.NoError(t, handler(ctx))
		assert.False(t, nextCalled)
		assert.Equal(t, 401, ctx.status)
	})
}

func TestRouteAuthenticator_OptionalIdentity(t *testing.T) {
	auther, tokens := newAutherFixture(t)
	alice := blog.Identity{ID: 1, Username: "alice"}

	t.Run("valid token attaches the viewer", func(t *testing.T) {
		ctx := newRecordingContext()
		ctx.On("GetString", blog.HeaderAuthorization, "").Return(bearerFor(t, tokens, alice))
		ctx.On("Locals", "user", mock.AnythingOfType("*blog.Identity")).Return(nil)

		var seen blog.Identity
		var ok bool
		handler := auther.OptionalIdentity()(func(c router.Context) error {
			seen, ok = blog.IdentityFromContext(c.Context())
			return nil
		})

		require.NoError(t, handler(ctx))
		require.True(t, ok)
		assert.Equal(t, alice, seen)
	})

	t.Run("absent header proceeds anonymously", func(t *testing.T) {
		ctx := newRecordingContext()
		ctx.On("GetString", blog.HeaderAuthorization, "").Return("")

		nextCalled := false
		handler := auther.OptionalIdentity()(func(c router.Context) error {
			nextCalled = true
			_, ok := blog.IdentityFromContext(c.Context())
			assert.False(t, ok)
			return nil
		})

		require.NoError(t, handler(ctx))
		assert.True(t, nextCalled)
		ctx.AssertNotCalled(t, "Locals", mock.Anything, mock.Anything)
	})

	t.Run("malformed token proceeds anonymously", func(t *testing.T) {
		ctx := newRecordingContext()
		ctx.On("GetString", blog.HeaderAuthorization, "").Return(blog.BearerScheme + "garbage")

		nextCalled := false
		handler := auther.OptionalIdentity()(func(c router.Context) error {
			nextCalled = true
			_, ok := blog.IdentityFromContext(c.Context())
			assert.False(t, ok)
			return nil
		})

		require.NoError(t, handler(ctx))
		assert.True(t, nextCalled)
		assert.False(t, ctx.jsonCalled)
		ctx.AssertNotCalled(t, "Locals", mock.Anything, mock.Anything)
	})

	t.Run("expired token answers 401 instead of degrading", func(t *testing.T) {
		ctx := newRecordingContext()
		ctx.On("GetString", blog.HeaderAuthorization, "").Return(expiredBearer(t, tokens))

		nextCalled := false
		handler := auther.OptionalIdentity()(func(router.Context) error {
			nextCalled = true
			return nil
		})

		require.NoError(t, handler(ctx))
		assert.False(t, nextCalled)
		assert.Equal(t, 401, ctx.status)
		assert.JSONEq(t, `{"status":401,"msg":"authentication token is expired","body":null}`, envelope(t, ctx))
	})
}

func TestBlogController_Login(t *testing.T) {
	hash, err := blog.HashPassword("s3cret-pass")
	require.NoError(t, err)

	alice := &blog.User{ID: 1, Username: "alice", PasswordHash: hash}

	newFixture := func() (*blog.BlogController, *MockRepositoryManager, blog.TokenService) {
		repo := newMockRepo()
		tokens := blog.NewTokenService([]byte("http-test-key"), 1, quietLogger{})
		ctrl := &blog.BlogController{
			Logger: quietLogger{},
			Users:  blog.NewUserService(repo, tokens).WithLogger(quietLogger{}),
		}
		return ctrl, repo, tokens
	}

	t.Run("answers the token in the authorization header with a null body", func(t *testing.T) {
		ctrl, repo, tokens := newFixture()
		repo.users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)

		ctx := newRecordingContext()
		ctx.body = blog.LoginPayload{Username: "alice", Password: "s3cret-pass"}

		require.NoError(t, ctrl.Login(ctx))

		header := ctx.headers[blog.HeaderAuthorization]
		require.True(t, strings.HasPrefix(header, blog.BearerScheme))

		claims, err := tokens.Validate(strings.TrimPrefix(header, blog.BearerScheme))
		require.NoError(t, err)
		assert.Equal(t, int64(1), claims.UID)
		assert.Equal(t, "alice", claims.Username)

		assert.Equal(t, 200, ctx.status)
		assert.JSONEq(t, `{"status":200,"msg":"success","body":null}`, envelope(t, ctx))
	})

	t.Run("bad credentials answer 401 and set no header", func(t *testing.T) {
		ctrl, repo, _ := newFixture()
		repo.users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)

		ctx := newRecordingContext()
		ctx.body = blog.LoginPayload{Username: "alice", Password: "wrong-pass"}

		require.NoError(t, ctrl.Login(ctx))

		assert.Empty(t, ctx.headers)
		assert.Equal(t, 401, ctx.status)
		assert.JSONEq(t, `{"status":401,"msg":"invalid username or password","body":null}`, envelope(t, ctx))
	})

	t.Run("missing fields answer 400 before hitting the store", func(t *testing.T) {
		ctrl, repo, _ := newFixture()

		ctx := newRecordingContext()
		ctx.body = blog.LoginPayload{Username: "alice"}

		require.NoError(t, ctrl.Login(ctx))

		assert.Equal(t, 400, ctx.status)
		repo.users.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})
}
