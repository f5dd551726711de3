package blog

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// SignUpMessage carries a new account request
type SignUpMessage struct {
	Username string
	Password string
	Email    string
}

// UpdateProfileMessage carries a profile update; empty fields are left
// untouched
type UpdateProfileMessage struct {
	Password string
	Email    string
}

// UserService implements account operations: sign-up, sign-in, profile read
// and self-only profile update.
type UserService struct {
	repo   RepositoryManager
	tokens TokenService
	logger Logger
}

func NewUserService(repo RepositoryManager, tokens TokenService) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (s *UserService) WithLogger(logger Logger) *UserService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// SignUp registers a new account. Duplicate usernames fail with a conflict
// before any write; the password is stored only as a bcrypt hash.
func (s *UserService) SignUp(ctx context.Context, msg SignUpMessage) (PublicProfile, error) {
	var profile PublicProfile

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.repo.Users().GetByUsernameTx(ctx, tx, msg.Username); err == nil {
			return errors.New("username already taken", errors.CategoryConflict).
				WithCode(errors.CodeBadRequest).
				WithMetadata(map[string]any{
					"username": msg.Username,
				})
		} else if !IsNotFoundError(err) {
			return err
		}

		hash, err := HashPassword(msg.Password)
		if err != nil {
			return err
		}

		record, err := s.repo.Users().CreateTx(ctx, tx, &User{
			Username:     msg.Username,
			PasswordHash: hash,
			Email:        msg.Email,
			Role:         RoleUser,
		})
		if err != nil {
			return err
		}

		profile = ToPublicProfile(record, true)
		return nil
	})

	if err != nil {
		return PublicProfile{}, err
	}

	s.logger.Info("user registered", "user_id", profile.ID, "username", profile.Username)
	return profile, nil
}

// SignIn verifies the credentials and issues a token. Unknown usernames and
// wrong passwords report the same ErrBadCredentials.
func (s *UserService) SignIn(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.Users().GetByUsername(ctx, username)
	if err != nil {
		if IsNotFoundError(err) {
			s.logger.Info("sign in attempt for unknown username", "username", username)
			return "", ErrBadCredentials
		}
		return "", err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		s.logger.Info("sign in attempt with wrong password", "user_id", user.ID)
		return "", ErrBadCredentials
	}

	return s.tokens.Generate(user.Identity())
}

// GetProfile returns the public projection for the given user
func (s *UserService) GetProfile(ctx context.Context, id int64) (PublicProfile, error) {
	user, err := s.repo.Users().GetByID(ctx, id)
	if err != nil {
		return PublicProfile{}, err
	}
	return ToPublicProfile(user, true), nil
}

// UpdateProfile changes the password and/or email of an account. Only the
// account owner may update it; the stored row is untouched on denial.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, caller Identity, msg UpdateProfileMessage) (PublicProfile, error) {
	if err := AuthorizeMutation(caller, id); err != nil {
		return PublicProfile{}, err
	}

	var profile PublicProfile

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		user, err := s.repo.Users().GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		columns := make([]string, 0, 2)

		if msg.Password != "" {
			hash, err := HashPassword(msg.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
			columns = append(columns, "password_hash")
		}

		if msg.Email != "" {
			user.Email = msg.Email
			columns = append(columns, "email")
		}

		if len(columns) == 0 {
			profile = ToPublicProfile(user, true)
			return nil
		}

		record, err := s.repo.Users().UpdateTx(ctx, tx, user, columns...)
		if err != nil {
			return err
		}

		profile = ToPublicProfile(record, true)
		return nil
	})

	if err != nil {
		return PublicProfile{}, err
	}

	return profile, nil
}
