package api

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned by Login when the backend rejects
// the email/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrRegistrationRejected is returned by Register when the backend
// refuses to create the account.
var ErrRegistrationRejected = errors.New("registration rejected")

// AccountInfo is the server-side profile returned by a successful login.
type AccountInfo struct {
	ID        int64
	FirstName string
	LastName  string
}

type loginResponse struct {
	Result string `json:"result"`
	User   struct {
		ID      wireInt `json:"id"`
		Name    string  `json:"name"`
		Surname string  `json:"surname"`
	} `json:"user"`
}

// Login exchanges credentials for the account profile. Both a non-200
// status and a result other than "OK" mean invalid credentials; the
// error never carries backend details past this boundary.
func (c *Client) Login(ctx context.Context, email, password string) (AccountInfo, error) {
	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.postJSON(ctx, "/login", body, &resp); err != nil {
		var status *StatusError
		if errors.As(err, &status) {
			return AccountInfo{}, ErrInvalidCredentials
		}
		return AccountInfo{}, err
	}
	if resp.Result != "OK" {
		return AccountInfo{}, ErrInvalidCredentials
	}
	return AccountInfo{
		ID:        int64(resp.User.ID),
		FirstName: resp.User.Name,
		LastName:  resp.User.Surname,
	}, nil
}

// Register creates a new account. The backend signals acceptance with a
// 200 status and result "OK".
func (c *Client) Register(ctx context.Context, name, surname, email, password string) error {
	body := map[string]string{
		"name":     name,
		"surname":  surname,
		"email":    email,
		"password": password,
	}
	var resp struct {
		Result string `json:"result"`
	}
	if err := c.postJSON(ctx, "/register", body, &resp); err != nil {
		var status *StatusError
		if errors.As(err, &status) {
			return ErrRegistrationRejected
		}
		return err
	}
	if resp.Result != "OK" {
		return ErrRegistrationRejected
	}
	return nil
}
