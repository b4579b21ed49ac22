package client

import "context"

type AuthService struct {
	api *Client
}

func NewAuthService(api *Client) *AuthService {
	return &AuthService{api: api}
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var res LoginResult
	if err := s.api.Post(ctx, "/api/v1/admin/login", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
