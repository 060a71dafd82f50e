package commands

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-tania/config"
	"go-tania/controllers"
	"go-tania/routes"
	"go-tania/session"
)

// purgeInterval 过期会话的清理间隔
const purgeInterval = time.Hour

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

// openDB 连接数据库并执行迁移
func (a *app) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := config.OpenDB(ctx, a.cfg.Database)
	if err != nil {
		return nil, err
	}
	if _, err := config.Migrate(ctx, db, a.logger); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (a *app) newManager(db *sql.DB) (*session.Manager, error) {
	base, err := a.backend()
	if err != nil {
		return nil, err
	}
	box, err := session.NewBox(a.cfg.Session.Secret)
	if err != nil {
		return nil, err
	}
	return session.NewManager(
		base,
		session.NewSQLRepository(db),
		box,
		session.NewSigner(a.cfg.Session.Secret, a.cfg.Session.TTL),
		session.Options{
			ClientID:    a.cfg.Backend.ClientID,
			RedirectURI: a.cfg.Backend.RedirectURI,
			TTL:         a.cfg.Session.TTL,
		},
		a.logger.Named("session"),
	), nil
}

func (a *app) serve(ctx context.Context) error {
	gin.SetMode(a.cfg.Server.Mode)

	db, err := a.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	manager, err := a.newManager(db)
	if err != nil {
		return err
	}

	r, err := routes.SetupRouter(routes.Options{
		Sessions: manager,
		Cookie: controllers.CookieOptions{
			Name:   a.cfg.Session.CookieName,
			MaxAge: int(a.cfg.Session.TTL.Seconds()),
			Secure: a.cfg.Session.Secure,
		},
		Logger: a.logger.Named("http"),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server started", zap.String("addr", srv.Addr), zap.String("backend", a.cfg.Backend.APIURL()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		a.purgeSessions(gctx, manager)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("server stopping")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// purgeSessions 启动时清理一次，之后定期清理
func (a *app) purgeSessions(ctx context.Context, m *session.Manager) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		n, err := m.Purge(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Warn("purge sessions", zap.Error(err))
		} else if n > 0 {
			a.logger.Info("expired sessions purged", zap.Int64("count", n))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
