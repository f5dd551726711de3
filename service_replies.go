package blog

import (
	"context"

	"github.com/uptrace/bun"
)

// SaveReplyMessage carries a new reply
type SaveReplyMessage struct {
	BoardID int64
	Comment string
}

// ReplyService implements reply operations
type ReplyService struct {
	repo   RepositoryManager
	logger Logger
}

func NewReplyService(repo RepositoryManager) *ReplyService {
	return &ReplyService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *ReplyService) WithLogger(logger Logger) *ReplyService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Create attaches a reply to a board and returns the refreshed board detail
// from the author's point of view. The parent board is loaded first, so a
// missing board fails with 404 before anything is written.
func (s *ReplyService) Create(ctx context.Context, msg SaveReplyMessage, owner Identity) (BoardDetail, error) {
	var detail BoardDetail

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.repo.Boards().GetByIDTx(ctx, tx, msg.BoardID); err != nil {
			return err
		}

		if _, err := s.repo.Replies().CreateTx(ctx, tx, &Reply{
			Comment: msg.Comment,
			UserID:  owner.ID,
			BoardID: msg.BoardID,
		}); err != nil {
			return err
		}

		record, err := s.repo.Boards().GetDetailByIDTx(ctx, tx, msg.BoardID)
		if err != nil {
			return err
		}

		detail = newBoardDetail(record, &owner)
		return nil
	})

	if err != nil {
		return BoardDetail{}, err
	}

	return detail, nil
}

// Delete removes a reply. The caller must own the reply, and the reply must
// belong to the board named in the request; either mismatch is a denial.
func (s *ReplyService) Delete(ctx context.Context, boardID, replyID int64, caller Identity) error {
	return s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		reply, err := s.repo.Replies().GetByIDTx(ctx, tx, replyID)
		if err != nil {
			return err
		}

		if err := AuthorizeMutation(caller, reply.UserID); err != nil {
			return err
		}

		if err := AuthorizeReplyParent(reply, boardID); err != nil {
			return err
		}

		return s.repo.Replies().DeleteTx(ctx, tx, replyID)
	})
}
