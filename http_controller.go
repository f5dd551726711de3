package blog

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// apiResponse is the JSON envelope every endpoint answers with
type apiResponse struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
	Body   any    `json:"body"`
}

func success(status int, body any) apiResponse {
	return apiResponse{Status: status, Msg: "success", Body: body}
}

func failure(status int, msg string) apiResponse {
	return apiResponse{Status: status, Msg: msg, Body: nil}
}

// BlogController handles the JSON API routes
type BlogController struct {
	Logger  Logger
	Users   *UserService
	Boards  *BoardService
	Replies *ReplyService
	Auther  *RouteAuthenticator
}

type BlogControllerOption func(*BlogController) *BlogController

func NewBlogController(opts ...BlogControllerOption) *BlogController {
	c := &BlogController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Users == nil || c.Boards == nil || c.Replies == nil {
		panic("Missing services in blog controller...")
	}

	if c.Auther == nil {
		panic("Missing route authenticator in blog controller...")
	}

	return c
}

// RegisterBlogRoutes wires the full route table. Mutating routes sit behind
// the protected middleware; the board detail resolves an optional viewer.
func RegisterBlogRoutes[T any](app router.Router[T], opts ...BlogControllerOption) *BlogController {
	c := NewBlogController(opts...)

	protected := c.Auther.Protected()
	optional := c.Auther.OptionalIdentity()

	app.Get("/", c.BoardIndex).SetName("boards.index")
	app.Get("/boards", c.BoardIndex).SetName("boards.list")
	app.Get("/boards/:id", c.BoardShow, optional).SetName("boards.show")

	app.Post("/api/boards", c.BoardCreate, protected).SetName("boards.create")
	app.Put("/api/boards/:id", c.BoardUpdate, protected).SetName("boards.update")
	app.Delete("/api/boards/:id", c.BoardDelete, protected).SetName("boards.delete")

	app.Post("/api/replies", c.ReplyCreate, protected).SetName("replies.create")
	app.Delete("/api/boards/:boardId/replies/:replyId", c.ReplyDelete, protected).SetName("replies.delete")

	app.Post("/join", c.Join).SetName("users.join")
	app.Post("/login", c.Login).SetName("users.login")
	app.Get("/logout", c.Logout).SetName("users.logout")

	app.Get("/api/users/:id", c.UserShow, protected).SetName("users.show")
	app.Put("/api/users/:id", c.UserUpdate, protected).SetName("users.update")

	return c
}

// JoinPayload is the sign-up request body
type JoinPayload struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Email    string `form:"email" json:"email"`
}

// Validate will run validation rules
func (r JoinPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(2, 20)),
		validation.Field(&r.Password, validation.Required, validation.Length(4, 60)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 50), is.Email),
	)
}

// LoginPayload is the sign-in request body
type LoginPayload struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// SaveBoardPayload is the board create/update request body
type SaveBoardPayload struct {
	Title   string `form:"title" json:"title"`
	Content string `form:"content" json:"content"`
}

// Validate will run validation rules
func (r SaveBoardPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 100)),
	)
}

// SaveReplyPayload is the reply create request body
type SaveReplyPayload struct {
	BoardID int64  `form:"boardId" json:"boardId"`
	Comment string `form:"comment" json:"comment"`
}

// Validate will run validation rules
func (r SaveReplyPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BoardID, validation.Required),
		validation.Field(&r.Comment, validation.Required, validation.Length(1, 300)),
	)
}

// UpdateUserPayload is the profile update request body; blank fields are
// left unchanged
type UpdateUserPayload struct {
	Password string `form:"password" json:"password"`
	Email    string `form:"email" json:"email"`
}

// Validate will run validation rules
func (r UpdateUserPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Length(4, 60)),
		validation.Field(&r.Email, validation.Length(3, 50), is.Email),
	)
}

// BoardIndex lists all boards
func (a *BlogController) BoardIndex(ctx router.Context) error {
	items, err := a.Boards.List(ctx.Context())
	if err != nil {
		return a.fail(ctx, err)
	}
	return ctx.JSON(router.StatusOK, success(router.StatusOK, items))
}

// BoardShow returns a board detail with per-viewer ownership flags
func (a *BlogController) BoardShow(ctx router.Context) error {
	id, err := a.param(ctx, "id")
	if err != nil {
		return a.fail(ctx, err)
	}

	viewer, _ := IdentityFromRouterContext(ctx, a.Auther.ContextKey())

	detail, err := a.Boards.Detail(ctx.Context(), id, viewer)
	if err != nil {
		return a.fail(ctx, err)
	}

	return ctx.JSON(router.StatusOK, success(router.StatusOK, detail))
}

// BoardCreate persists a new board owned by the caller
func (a *BlogController) BoardCreate(ctx router.Context) error {
	caller, err := a.identity(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	payload := new(SaveBoardPayload)
	if err := a.bind(ctx, payload); err != nil {
		return a.fail(ctx, err)
	}

	view, err := a.Boards.Create(ctx.Context(), SaveBoardMessage{
		Title:   payload.Title,
		Content: payload.Content,
	}, caller)
	if err != nil {
		return a.fail(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, success(router.StatusCreated, view))
}

// BoardUpdate replaces the title and content of a board the caller owns
func (a *BlogController) BoardUpdate(ctx router.Context) error {
	caller, err := a.identity(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	id, err := a.param(ctx, "id")
	if err != nil {
		return a.fail(ctx, err)
	}

	payload := new(SaveBoardPayload)
	if err := a.bind(ctx, payload); err != nil {
		return a.fail(ctx, err)
	}

	view, err := a.Boards.Update(ctx.Context(), id, caller, SaveBoardMessage{
		Title:   payload.Title,
		Content: payload.Content,
	})
	if err != nil {
		return a.fail(ctx, err)
	}

	return ctx.JSON(router.StatusOK, success(router.StatusOK, view))
}

// BoardDelete removes a board the caller owns
func (a *BlogController) BoardDelete(ctx router.Context) error {
	caller, err := a.identity(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	id, err := a.param(ctx, "id")
	if err != nil {
		return a.fail(ctx, err)
	}

	if err := a.Boards.Delete(ctx.Context(), id, caller); err != nil {
		return a.fail(ctx, err)
	}

	return ctx.JSON(router.StatusOK, success(router.StatusOK, nil))
}

// ReplyCreate attaches a reply and returns the refreshed board detail
func (a *BlogController) ReplyCreate(ctx router.Context) error {
	caller, err := a.identity(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	payload := new(SaveReplyPayload)
	if err := a.bind(ctx, payload); err != nil {
		return a.fail(ctx, err)
	}

	detail, err := a.Replies.Create(ctx.Context(), SaveReplyMessage{
		BoardID: payload.BoardID,
		Comment: payload.Comment,
	}, caller)
	if err != nil {
		return a.fail(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, success(router.StatusCreated, detail))
}

// ReplyDelete removes a reply the caller owns, addressed through its board
func (a *BlogController) ReplyDelete(ctx router.Context) error {
	caller, err := a.identity(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	boardID, err := a.param(ctx, "boardId")
	if err != nil {
		return a.fail(ctx, err)
	}

	replyID, err := a.param(ctx, "replyId")
	if err != nil {
		return a.fail(ctx, err)
	}

	if err := a.Replies.Delete(ctx.Context(), boardID, replyID, caller); err != nil {
		return a.fail(ctx, err)
	}

	return ctx.JSON(router.StatusOK, success(router.StatusOK, nil))
}

// Join registers a new account
func (a *BlogController) Join(ctx router.Context) error {
	payload := new(JoinPayload)
	if err := a.bind(ctx, payload); err != nil {
		return a.fail(ctx, err)
	}

	profile, err := a.Users.SignUp(ctx.Context(), SignUpMessage{
		Username: payload.Username,
		Password: payload.Password,
		Email:    payload.Email,
	})
	if err != nil {
		return a.fail(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, success(router.StatusCreated, profile))
}

// Login verifies credentials and answers with the token in the
// Authorization response header. The body stays null: clients read the
// header, nothing else.
func (a *BlogController) Login(ctx router.Context) error {
	payload := new(LoginPayload)
	if err := a.bind(ctx, payload); err != nil {
		return a.fail(ctx, err)
	}

	token, err := a.Users.SignIn(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		return a.fail(ctx, err)
	}

	ctx.SetHeader(HeaderAuthorization, BearerScheme+token)
	return ctx.JSON(router.StatusOK, success(router.StatusOK, nil))
}

// Logout is a stateless no-op kept for client symmetry; there is no
// server-side session to drop
func (a *BlogController) Logout(ctx router.Context) error {
	return ctx.JSON(router.StatusOK, success(router.StatusOK, nil))
}

// UserShow returns the caller's own public profile
func (a *BlogController) UserShow(ctx router.Context) error {
	caller, err := a.identity(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	id, err := a.param(ctx, "id")
	if err != nil {
		return a.fail(ctx, err)
	}

	if err := AuthorizeMutation(caller, id); err != nil {
		return a.fail(ctx, err)
	}

	profile, err := a.Users.GetProfile(ctx.Context(), id)
	if err != nil {
		return a.fail(ctx, err)
	}

	return ctx.JSON(router.StatusOK, success(router.StatusOK, profile))
}

// UserUpdate changes the caller's password and/or email
func (a *BlogController) UserUpdate(ctx router.Context) error {
	caller, err := a.identity(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	id, err := a.param(ctx, "id")
	if err != nil {
		return a.fail(ctx, err)
	}

	payload := new(UpdateUserPayload)
	if err := a.bind(ctx, payload); err != nil {
		return a.fail(ctx, err)
	}

	profile, err := a.Users.UpdateProfile(ctx.Context(), id, caller, UpdateProfileMessage{
		Password: payload.Password,
		Email:    payload.Email,
	})
	if err != nil {
		return a.fail(ctx, err)
	}

	return ctx.JSON(router.StatusOK, success(router.StatusOK, profile))
}

type validatable interface {
	Validate() error
}

func (a *BlogController) bind(ctx router.Context, payload validatable) error {
	if err := ctx.Bind(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "unable to parse request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, err.Error()).
			WithCode(errors.CodeBadRequest)
	}

	return nil
}

func (a *BlogController) identity(ctx router.Context) (Identity, error) {
	identity, ok := IdentityFromRouterContext(ctx, a.Auther.ContextKey())
	if !ok {
		return Identity{}, ErrTokenMissing
	}
	return *identity, nil
}

func (a *BlogController) param(ctx router.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name, ""), 10, 64)
	if err != nil {
		return 0, errors.New("invalid "+name+" route parameter", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}

func (a *BlogController) fail(ctx router.Context, err error) error {
	return WriteError(ctx, a.Logger, err)
}
