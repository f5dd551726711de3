package blog

import (
	"time"

	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is the default role assigned at sign-up
	RoleUser UserRole = "USER"
	// RoleAdmin is the other value the user_role column holds. No endpoint
	// assigns or checks it; admins are promoted directly in the database.
	RoleAdmin UserRole = "ADMIN"
)

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Email         string     `bun:"email" json:"email,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Identity returns the principal for this user
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username}
}

// Board is the post model
type Board struct {
	bun.BaseModel `bun:"table:boards,alias:brd"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Content       string     `bun:"content" json:"content,omitempty"`
	UserID        int64      `bun:"user_id,notnull" json:"user_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Replies       []*Reply   `bun:"rel:has-many,join:id=board_id" json:"replies,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Reply is the comment model
type Reply struct {
	bun.BaseModel `bun:"table:replies,alias:rpl"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Comment       string     `bun:"comment,notnull" json:"comment,omitempty"`
	UserID        int64      `bun:"user_id,notnull" json:"user_id,omitempty"`
	BoardID       int64      `bun:"board_id,notnull" json:"board_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Board         *Board     `bun:"rel:belongs-to,join:board_id=id" json:"board,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// PublicProfile is the outward user projection. It never carries the
// password hash; email is included only when the caller asks for it.
type PublicProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ToPublicProfile projects a user record for external consumption
func ToPublicProfile(u *User, includeEmail bool) PublicProfile {
	p := PublicProfile{
		ID:       u.ID,
		Username: u.Username,
	}
	if includeEmail {
		p.Email = u.Email
	}
	return p
}
