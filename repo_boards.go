package blog

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type Boards interface {
	List(ctx context.Context) ([]*Board, error)
	GetByID(ctx context.Context, id int64) (*Board, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Board, error)
	GetDetailByID(ctx context.Context, id int64) (*Board, error)
	GetDetailByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Board, error)
	Create(ctx context.Context, record *Board) (*Board, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Board) (*Board, error)
	Update(ctx context.Context, record *Board, columns ...string) (*Board, error)
	UpdateTx(ctx context.Context, tx bun.IDB, record *Board, columns ...string) (*Board, error)
	Delete(ctx context.Context, id int64) error
	DeleteTx(ctx context.Context, tx bun.IDB, id int64) error
}

type boards struct {
	db *bun.DB
}

var _ Boards = (*boards)(nil)

func NewBoardsRepository(db *bun.DB) Boards {
	return &boards{db: db}
}

func (r *boards) List(ctx context.Context) ([]*Board, error) {
	records := []*Board{}

	err := r.db.NewSelect().
		Model(&records).
		Order("brd.id DESC").
		Scan(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "unable to list boards")
	}

	return records, nil
}

func (r *boards) GetByID(ctx context.Context, id int64) (*Board, error) {
	return r.GetByIDTx(ctx, r.db, id)
}

func (r *boards) GetByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Board, error) {
	record := &Board{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, wrapSelectError(err, "board")
	}

	return record, nil
}

func (r *boards) GetDetailByID(ctx context.Context, id int64) (*Board, error) {
	return r.GetDetailByIDTx(ctx, r.db, id)
}

// GetDetailByIDTx loads a board together with its author and replies, replies
// in insertion order with their authors attached.
func (r *boards) GetDetailByIDTx(ctx context.Context, tx bun.IDB, id int64) (*Board, error) {
	record := &Board{}

	err := tx.NewSelect().
		Model(record).
		Relation("User").
		Relation("Replies", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("rpl.id ASC")
		}).
		Relation("Replies.User").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, wrapSelectError(err, "board")
	}

	return record, nil
}

func (r *boards) Create(ctx context.Context, record *Board) (*Board, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *boards) CreateTx(ctx context.Context, tx bun.IDB, record *Board) (*Board, error) {
	_, err := tx.NewInsert().
		Model(record).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "unable to insert board")
	}

	return record, nil
}

func (r *boards) Update(ctx context.Context, record *Board, columns ...string) (*Board, error) {
	return r.UpdateTx(ctx, r.db, record, columns...)
}

func (r *boards) UpdateTx(ctx context.Context, tx bun.IDB, record *Board, columns ...string) (*Board, error) {
	q := tx.NewUpdate().
		Model(record).
		WherePK().
		Returning("*")

	if len(columns) > 0 {
		q = q.Column(columns...)
	}

	if _, err := q.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "unable to update board")
	}

	return record, nil
}

func (r *boards) Delete(ctx context.Context, id int64) error {
	return r.DeleteTx(ctx, r.db, id)
}

// DeleteTx removes the board and its replies. Replies go first so the delete
// also works on engines without cascading foreign keys enabled.
func (r *boards) DeleteTx(ctx context.Context, tx bun.IDB, id int64) error {
	if _, err := tx.NewDelete().
		Model((*Reply)(nil)).
		Where("board_id = ?", id).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to delete board replies")
	}

	if _, err := tx.NewDelete().
		Model((*Board)(nil)).
		Where("id = ?", id).
		Exec(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "unable to delete board")
	}

	return nil
}
