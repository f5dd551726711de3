package config

import (
	"fmt"
	"time"
)

// BaseConfig is the service configuration loaded by go-config. Values come
// from app.json with environment overrides.
type BaseConfig struct {
	Server      Server      `json:"server" koanf:"server"`
	Auth        Auth        `json:"auth" koanf:"auth"`
	Persistence Persistence `json:"persistence" koanf:"persistence"`
}

func (a BaseConfig) Validate() error {
	return nil
}

func (a BaseConfig) GetServer() Server {
	return a.Server
}

func (a BaseConfig) GetAuth() Auth {
	return a.Auth
}

func (a BaseConfig) GetPersistence() Persistence {
	return a.Persistence
}

type Server struct {
	Address string `json:"address" koanf:"address"`
}

func (s Server) GetAddress() string {
	if s.Address == "" {
		return ":8080"
	}
	return s.Address
}

// Auth satisfies the blog.Config getter interface
type Auth struct {
	SigningKey      string `json:"signing_key" koanf:"signing_key"`
	TokenExpiration int    `json:"token_expiration" koanf:"token_expiration"`
	ContextKey      string `json:"context_key" koanf:"context_key"`
}

func (a Auth) GetSigningKey() string {
	return a.SigningKey
}

// GetTokenExpiration is the token lifetime in hours
func (a Auth) GetTokenExpiration() int {
	if a.TokenExpiration <= 0 {
		return 1
	}
	return a.TokenExpiration
}

func (a Auth) GetContextKey() string {
	if a.ContextKey == "" {
		return "user"
	}
	return a.ContextKey
}

type Persistence struct {
	Debug                 bool   `json:"debug" koanf:"debug"`
	Driver                string `json:"driver" koanf:"driver"`
	DSN                   string `json:"dsn" koanf:"dsn"`
	Server                string `json:"server" koanf:"server"`
	Database              string `json:"database" koanf:"database"`
	Username              string `json:"username" koanf:"username"`
	Password              string `json:"password" koanf:"password"`
	PingTimeoutExpression string `json:"ping_timeout" koanf:"ping_timeout"`
}

func (p Persistence) GetDebug() bool {
	return p.Debug
}

func (p Persistence) GetDriver() string {
	if p.Driver == "" {
		return "sqlite"
	}
	return p.Driver
}

func (p Persistence) GetDSN() string {
	if p.DSN == "" {
		return "file:blog.db?cache=shared&_fk=1"
	}
	return p.DSN
}

func (p Persistence) GetServer() string {
	return p.Server
}

func (p Persistence) GetDatabase() string {
	return p.Database
}

func (p Persistence) GetUsername() string {
	return p.Username
}

func (p Persistence) GetPassword() string {
	return p.Password
}

func (p Persistence) GetPingTimeout() time.Duration {
	if p.PingTimeoutExpression == "" {
		return 5 * time.Second
	}
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		panic(
			fmt.Sprintf("unable to parse time: expr %s", p.PingTimeoutExpression),
		)
	}
	return dur
}
