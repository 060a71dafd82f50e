package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"go-tania/api"
	"go-tania/session"
	"go-tania/utils"
)

// cliSessionID 命令行登录在会话表中使用的固定 ID
const cliSessionID = "cli"

// errNotLoggedIn 命令行尚未登录
var errNotLoggedIn = errors.New("not logged in, run `tania login` first")

func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the access token in the local database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("TANIA_PASSWORD")
			}
			if username == "" || password == "" {
				return errors.New("username and password are required")
			}
			if err := a.login(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (or TANIA_PASSWORD)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the local access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			if err := session.NewSQLRepository(db).Delete(cmd.Context(), cliSessionID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func (a *app) login(ctx context.Context, username, password string) error {
	base, err := a.backend()
	if err != nil {
		return err
	}
	state, err := utils.GenerateState()
	if err != nil {
		return err
	}
	tok, err := api.New(base).Login(ctx, api.Credentials{
		Username:    username,
		Password:    password,
		ClientID:    a.cfg.Backend.ClientID,
		RedirectURI: a.cfg.Backend.RedirectURI,
		State:       state,
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if tok.State != "" && tok.State != state {
		return session.ErrStateMismatch
	}

	box, err := session.NewBox(a.cfg.Session.Secret)
	if err != nil {
		return err
	}
	sealed, err := box.Seal(tok.AccessToken)
	if err != nil {
		return err
	}

	db, err := a.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return session.NewSQLRepository(db).Save(ctx, session.Record{
		ID:        cliSessionID,
		Username:  username,
		Token:     sealed,
		ExpiresIn: tok.ExpiresIn,
		CreatedAt: time.Now(),
	})
}

// authorizedAPI 读取本地 token，返回带 token 的 API
func (a *app) authorizedAPI(ctx context.Context) (*api.API, error) {
	db, err := a.openDB(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rec, err := session.NewSQLRepository(db).Find(ctx, cliSessionID)
	if errors.Is(err, session.ErrSessionNotFound) {
		return nil, errNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	if rec.TokenExpired(time.Now()) {
		return nil, fmt.Errorf("%w: token expired", errNotLoggedIn)
	}
	box, err := session.NewBox(a.cfg.Session.Secret)
	if err != nil {
		return nil, err
	}
	token, err := box.Open(rec.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNotLoggedIn, err)
	}
	base, err := a.backend()
	if err != nil {
		return nil, err
	}
	return api.New(base.WithToken(token)), nil
}
