package blog

import (
	"context"

	"github.com/uptrace/bun"
)

// SaveBoardMessage carries a board create or update
type SaveBoardMessage struct {
	Title   string
	Content string
}

// BoardListItem is the list projection
type BoardListItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// BoardView is the projection returned by mutations
type BoardView struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReplyView is a reply row inside a board detail, annotated with whether the
// viewer wrote it.
type ReplyView struct {
	ID       int64  `json:"id"`
	Comment  string `json:"comment"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	IsOwner  bool   `json:"isOwner"`
}

// BoardDetail is the full read projection. IsOwner flags are display hints
// for the viewer, not access decisions.
type BoardDetail struct {
	ID       int64       `json:"id"`
	Title    string      `json:"title"`
	Content  string      `json:"content"`
	UserID   int64       `json:"userId"`
	Username string      `json:"username"`
	IsOwner  bool        `json:"isOwner"`
	Replies  []ReplyView `json:"replies"`
}

// BoardService implements board operations with the load, authorize, mutate
// pipeline.
type BoardService struct {
	repo   RepositoryManager
	logger Logger
}

func NewBoardService(repo RepositoryManager) *BoardService {
	return &BoardService{
		repo:   repo,
		logger: defLogger{},
	}
}

func (s *BoardService) WithLogger(logger Logger) *BoardService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// List returns all boards, newest first
func (s *BoardService) List(ctx context.Context) ([]BoardListItem, error) {
	records, err := s.repo.Boards().List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]BoardListItem, 0, len(records))
	for _, b := range records {
		items = append(items, BoardListItem{ID: b.ID, Title: b.Title})
	}

	return items, nil
}

// Detail returns a board with its replies. A nil viewer is anonymous and
// gets every IsOwner flag false.
func (s *BoardService) Detail(ctx context.Context, id int64, viewer *Identity) (BoardDetail, error) {
	record, err := s.repo.Boards().GetDetailByID(ctx, id)
	if err != nil {
		return BoardDetail{}, err
	}
	return newBoardDetail(record, viewer), nil
}

// Create persists a new board owned by the caller
func (s *BoardService) Create(ctx context.Context, msg SaveBoardMessage, owner Identity) (BoardView, error) {
	var view BoardView

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := s.repo.Boards().CreateTx(ctx, tx, &Board{
			Title:   msg.Title,
			Content: msg.Content,
			UserID:  owner.ID,
		})
		if err != nil {
			return err
		}

		view = newBoardView(record)
		return nil
	})

	if err != nil {
		return BoardView{}, err
	}

	s.logger.Info("board created", "board_id", view.ID, "user_id", owner.ID)
	return view, nil
}

// Update replaces the title and content of a board the caller owns
func (s *BoardService) Update(ctx context.Context, id int64, caller Identity, msg SaveBoardMessage) (BoardView, error) {
	var view BoardView

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		board, err := s.repo.Boards().GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := AuthorizeMutation(caller, board.UserID); err != nil {
			return err
		}

		board.Title = msg.Title
		board.Content = msg.Content

		record, err := s.repo.Boards().UpdateTx(ctx, tx, board, "title", "content")
		if err != nil {
			return err
		}

		view = newBoardView(record)
		return nil
	})

	if err != nil {
		return BoardView{}, err
	}

	return view, nil
}

// Delete removes a board the caller owns, along with its replies
func (s *BoardService) Delete(ctx context.Context, id int64, caller Identity) error {
	return s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		board, err := s.repo.Boards().GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := AuthorizeMutation(caller, board.UserID); err != nil {
			return err
		}

		return s.repo.Boards().DeleteTx(ctx, tx, id)
	})
}

func newBoardView(b *Board) BoardView {
	return BoardView{
		ID:      b.ID,
		Title:   b.Title,
		Content: b.Content,
	}
}

func newBoardDetail(b *Board, viewer *Identity) BoardDetail {
	detail := BoardDetail{
		ID:      b.ID,
		Title:   b.Title,
		Content: b.Content,
		UserID:  b.UserID,
		IsOwner: viewer != nil && viewer.ID == b.UserID,
		Replies: make([]ReplyView, 0, len(b.Replies)),
	}

	if b.User != nil {
		detail.Username = b.User.Username
	}

	for _, r := range b.Replies {
		view := ReplyView{
			ID:      r.ID,
			Comment: r.Comment,
			UserID:  r.UserID,
			IsOwner: viewer != nil && viewer.ID == r.UserID,
		}
		if r.User != nil {
			view.Username = r.User.Username
		}
		detail.Replies = append(detail.Replies, view)
	}

	return detail
}
