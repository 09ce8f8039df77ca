package soulnest

import (
	"context"
	"fmt"
	"net/http"
)

// Users provides account operations.
type Users interface {
	// Get returns the user with the given ID.
	Get(ctx context.Context, id int64) (*User, error)

	// List returns all users.
	List(ctx context.Context) ([]User, error)

	// Register creates an account. The password is sealed with the server
	// public key before it is sent.
	Register(ctx context.Context, user *User) error

	// Update replaces the account with the given ID.
	Update(ctx context.Context, id int64, user *User) error

	// Delete removes the account with the given ID.
	Delete(ctx context.Context, id int64) error

	// Login authenticates with a sealed password and stores the returned
	// bearer token for later calls.
	Login(ctx context.Context, username, password string) (*LoginResponse, error)

	// Logout forgets the stored bearer token.
	Logout(ctx context.Context) error
}

// usersImpl implements the Users interface.
type usersImpl struct {
	client *Client
}

// Users returns the account operations.
func (c *Client) Users() Users {
	return &usersImpl{client: c}
}

func (u *usersImpl) Get(ctx context.Context, id int64) (*User, error) {
	return get[*User](ctx, u.client, fmt.Sprintf("/api/users/%d", id))
}

func (u *usersImpl) List(ctx context.Context) ([]User, error) {
	return get[[]User](ctx, u.client, "/api/users")
}

func (u *usersImpl) Register(ctx context.Context, user *User) error {
	if user == nil || user.Password == "" {
		return ErrMissingPassword
	}

	sealed, err := u.client.Encrypt(ctx, user.Password)
	if err != nil {
		return err
	}

	body := *user
	body.Password = sealed
	return send(ctx, u.client, http.MethodPost, "/api/users/register", &body)
}

func (u *usersImpl) Update(ctx context.Context, id int64, user *User) error {
	return send(ctx, u.client, http.MethodPut, fmt.Sprintf("/api/users/%d", id), user)
}

func (u *usersImpl) Delete(ctx context.Context, id int64) error {
	return del(ctx, u.client, fmt.Sprintf("/api/users/%d", id))
}

func (u *usersImpl) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	if password == "" {
		return nil, ErrMissingPassword
	}

	sealed, err := u.client.Encrypt(ctx, password)
	if err != nil {
		return nil, err
	}

	resp, err := post[*LoginResponse](ctx, u.client, "/api/users/login", map[string]string{
		"username": username,
		"password": sealed,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("login: empty response")
	}

	if resp.Token != "" {
		if err := u.client.SetBearerToken(ctx, resp.Token); err != nil {
			return resp, fmt.Errorf("store bearer token: %w", err)
		}
	}
	return resp, nil
}

func (u *usersImpl) Logout(ctx context.Context) error {
	return u.client.SetBearerToken(ctx, "")
}
