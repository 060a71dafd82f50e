package api

import (
	"context"
	"net/http"

	"go-tania/client"
)

// Credentials 登录参数
type Credentials struct {
	Username    string
	Password    string
	ClientID    string
	RedirectURI string
	State       string
}

// Login 登录，token 从跳转地址中解析
func (a *API) Login(ctx context.Context, cred Credentials) (client.Token, error) {
	return a.c.Login(ctx, "authorize", client.Form{
		"username":      {cred.Username},
		"password":      {cred.Password},
		"client_id":     {cred.ClientID},
		"response_type": {"token"},
		"redirect_uri":  {cred.RedirectURI},
		"state":         {cred.State},
	})
}

// PasswordChange 修改密码参数
type PasswordChange struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// ChangePassword 修改密码
func (a *API) ChangePassword(ctx context.Context, p PasswordChange) error {
	return a.c.Do(ctx, http.MethodPost, "user/change_password", client.Form{
		"old_password":     {p.OldPassword},
		"new_password":     {p.NewPassword},
		"confirm_password": {p.ConfirmPassword},
	}, nil)
}
