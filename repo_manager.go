package blog

import (
	"context"
	"database/sql"
	"log"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Users() Users
	Boards() Boards
	Replies() Replies
	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

type mngr struct {
	db      *bun.DB
	users   Users
	boards  Boards
	replies Replies
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:      db,
		users:   NewUsersRepository(db),
		boards:  NewBoardsRepository(db),
		replies: NewRepliesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized", errors.CategoryOperation)
	}

	if m.boards == nil {
		return errors.New("repository boards should be initialized", errors.CategoryOperation)
	}

	if m.replies == nil {
		return errors.New("repository replies should be initialized", errors.CategoryOperation)
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Boards() Boards {
	return m.boards
}

func (m mngr) Replies() Replies {
	return m.replies
}

// wrapSelectError maps sql.ErrNoRows from a lookup to a typed 404; anything
// else surfaces as an internal failure.
func wrapSelectError(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(err, errors.CategoryNotFound, entity+" not found").
			WithCode(errors.CodeNotFound)
	}
	return errors.Wrap(err, errors.CategoryInternal, "unable to load "+entity)
}
