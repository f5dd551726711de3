package blog_test

import (
	"context"
	"database/sql"

	blog "github.com/goliatone/go-blog"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

// MockUsers implements blog.Users
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetByID(ctx context.Context, id int64) (*blog.User, error) {
	args := m.Called(ctx, id)
	return userReturn(args.Get(0), args.Error(1))
}

func (m *MockUsers) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*blog.User, error) {
	args := m.Called(ctx, tx, id)
	return userReturn(args.Get(0), args.Error(1))
}

func (m *MockUsers) GetByUsername(ctx context.Context, username string) (*blog.User, error) {
	args := m.Called(ctx, username)
	return userReturn(args.Get(0), args.Error(1))
}

func (m *MockUsers) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*blog.User, error) {
	args := m.Called(ctx, tx, username)
	return userReturn(args.Get(0), args.Error(1))
}

func (m *MockUsers) Create(ctx context.Context, record *blog.User) (*blog.User, error) {
	args := m.Called(ctx, record)
	return userEcho(args, record)
}

func (m *MockUsers) CreateTx(ctx context.Context, tx bun.IDB, record *blog.User) (*blog.User, error) {
	args := m.Called(ctx, tx, record)
	return userEcho(args, record)
}

func (m *MockUsers) Update(ctx context.Context, record *blog.User, columns ...string) (*blog.User, error) {
	args := m.Called(ctx, record, columns)
	return userEcho(args, record)
}

func (m *MockUsers) UpdateTx(ctx context.Context, tx bun.IDB, record *blog.User, columns ...string) (*blog.User, error) {
	args := m.Called(ctx, tx, record, columns)
	return userEcho(args, record)
}

func userReturn(raw any, err error) (*blog.User, error) {
	if user, ok := raw.(*blog.User); ok {
		return user, err
	}
	return nil, err
}

// userEcho returns the stubbed record when one was provided, otherwise the
// record that was passed in, mirroring RETURNING * semantics.
func userEcho(args mock.Arguments, record *blog.User) (*blog.User, error) {
	if user, ok := args.Get(0).(*blog.User); ok && user != nil {
		return user, args.Error(1)
	}
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return record, nil
}

// MockBoards implements blog.Boards
type MockBoards struct {
	mock.Mock
}

func (m *MockBoards) List(ctx context.Context) ([]*blog.Board, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]*blog.Board); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBoards) GetByID(ctx context.Context, id int64) (*blog.Board, error) {
	args := m.Called(ctx, id)
	return boardReturn(args.Get(0), args.Error(1))
}

func (m *MockBoards) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*blog.Board, error) {
	args := m.Called(ctx, tx, id)
	return boardReturn(args.Get(0), args.Error(1))
}

func (m *MockBoards) GetDetailByID(ctx context.Context, id int64) (*blog.Board, error) {
	args := m.Called(ctx, id)
	return boardReturn(args.Get(0), args.Error(1))
}

func (m *MockBoards) GetDetailByIDTx(ctx context.Context, tx bun.IDB, id int64) (*blog.Board, error) {
	args := m.Called(ctx, tx, id)
	return boardReturn(args.Get(0), args.Error(1))
}

func (m *MockBoards) Create(ctx context.Context, record *blog.Board) (*blog.Board, error) {
	args := m.Called(ctx, record)
	return boardEcho(args, record)
}

func (m *MockBoards) CreateTx(ctx context.Context, tx bun.IDB, record *blog.Board) (*blog.Board, error) {
	args := m.Called(ctx, tx, record)
	return boardEcho(args, record)
}

func (m *MockBoards) Update(ctx context.Context, record *blog.Board, columns ...string) (*blog.Board, error) {
	args := m.Called(ctx, record, columns)
	return boardEcho(args, record)
}

func (m *MockBoards) UpdateTx(ctx context.Context, tx bun.IDB, record *blog.Board, columns ...string) (*blog.Board, error) {
	args := m.Called(ctx, tx, record, columns)
	return boardEcho(args, record)
}

func (m *MockBoards) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBoards) DeleteTx(ctx context.Context, tx bun.IDB, id int64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func boardReturn(raw any, err error) (*blog.Board, error) {
	if board, ok := raw.(*blog.Board); ok {
		return board, err
	}
	return nil, err
}

func boardEcho(args mock.Arguments, record *blog.Board) (*blog.Board, error) {
	if board, ok := args.Get(0).(*blog.Board); ok && board != nil {
		return board, args.Error(1)
	}
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return record, nil
}

// MockReplies implements blog.Replies
type MockReplies struct {
	mock.Mock
}

func (m *MockReplies) GetByID(ctx context.Context, id int64) (*blog.Reply, error) {
	args := m.Called(ctx, id)
	return replyReturn(args.Get(0), args.Error(1))
}

func (m *MockReplies) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*blog.Reply, error) {
	args := m.Called(ctx, tx, id)
	return replyReturn(args.Get(0), args.Error(1))
}

func (m *MockReplies) Create(ctx context.Context, record *blog.Reply) (*blog.Reply, error) {
	args := m.Called(ctx, record)
	return replyEcho(args, record)
}

func (m *MockReplies) CreateTx(ctx context.Context, tx bun.IDB, record *blog.Reply) (*blog.Reply, error) {
	args := m.Called(ctx, tx, record)
	return replyEcho(args, record)
}

func (m *MockReplies) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReplies) DeleteTx(ctx context.Context, tx bun.IDB, id int64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func replyReturn(raw any, err error) (*blog.Reply, error) {
	if reply, ok := raw.(*blog.Reply); ok {
		return reply, err
	}
	return nil, err
}

func replyEcho(args mock.Arguments, record *blog.Reply) (*blog.Reply, error) {
	if reply, ok := args.Get(0).(*blog.Reply); ok && reply != nil {
		return reply, args.Error(1)
	}
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return record, nil
}

// MockRepositoryManager implements blog.RepositoryManager. RunInTx calls the
// function directly with a zero transaction so service pipelines execute
// synchronously against the mocks.
type MockRepositoryManager struct {
	users   *MockUsers
	boards  *MockBoards
	replies *MockReplies
}

func newMockRepo() *MockRepositoryManager {
	return &MockRepositoryManager{
		users:   &MockUsers{},
		boards:  &MockBoards{},
		replies: &MockReplies{},
	}
}

func (m *MockRepositoryManager) Users() blog.Users {
	return m.users
}

func (m *MockRepositoryManager) Boards() blog.Boards {
	return m.boards
}

func (m *MockRepositoryManager) Replies() blog.Replies {
	return m.replies
}

func (m *MockRepositoryManager) Validate() error {
	return nil
}

func (m *MockRepositoryManager) MustValidate() {}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return f(ctx, bun.Tx{})
	}
}
