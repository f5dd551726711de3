// Package blog implements a token-authenticated blog backend: board and
// reply CRUD guarded by ownership checks, with a stateless HMAC-signed
// token as the only credential.
//
// The package is organized around four collaborators:
//
//   - TokenService mints and verifies signed identity tokens. The claim set
//     is fixed (subject, integer user id, username) and the signing key is
//     injected through Config, never hard coded.
//   - IdentityResolver extracts the bearer token from the Authorization
//     header and classifies failures (missing, expired, malformed).
//   - The access gate (AuthorizeMutation, AuthorizeReplyParent) decides
//     allow/deny for mutating operations. Ownership is the only
//     authorization relation; reads are never gated, they only compute
//     per-viewer display flags.
//   - Services (UserService, BoardService, ReplyService) orchestrate the
//     repositories behind a resolve, load, authorize, mutate pipeline that
//     runs inside a single transaction.
//
// Identity travels as an explicit argument from the HTTP boundary down into
// the services; handlers never pull it from ambient state.
package blog
