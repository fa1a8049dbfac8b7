package controllers

import (
	"context"

	"coinwatch/src/schemas"
)

type TokenController interface {
	PostToken(ctx context.Context, username, password string) (*schemas.TokenResponse, error)
	RegisterUser(ctx context.Context, req *schemas.UserRequest) (*schemas.UserResponse, error)
}

func (c *Controller) PostToken(ctx context.Context, username, password string) (*schemas.TokenResponse, error) {
	return c.Users.IssueToken(ctx, username, password)
}

func (c *Controller) RegisterUser(ctx context.Context, req *schemas.UserRequest) (*schemas.UserResponse, error) {
	return c.Users.Register(ctx, req)
}
