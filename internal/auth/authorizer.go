// Package auth resolves API keys to user identities. The aggregators never
// see credentials; the HTTP middleware injects the resolved user ID into
// the request context.
package auth

import (
	"context"
	"errors"
)

// UserInfo describes an authenticated caller.
type UserInfo struct {
	UserID  string `json:"userId"`
	KeyName string `json:"keyName"`
}

// Authorizer validates an API key and resolves the owning user.
type Authorizer interface {
	Authorize(ctx context.Context, apiKey string) (*UserInfo, error)
}

// ErrInvalidKey is returned for unknown or malformed API keys.
var ErrInvalidKey = errors.New("invalid API key")

// StaticAuthorizer recognizes a single configured key, for local
// development and tests.
type StaticAuthorizer struct {
	key    string
	userID string
}

func NewStaticAuthorizer(apiKey, userID string) *StaticAuthorizer {
	return &StaticAuthorizer{key: apiKey, userID: userID}
}

func (s *StaticAuthorizer) Authorize(ctx context.Context, apiKey string) (*UserInfo, error) {
	if apiKey == "" || apiKey != s.key {
		return nil, ErrInvalidKey
	}
	return &UserInfo{UserID: s.userID, KeyName: "Local Development Key"}, nil
}
