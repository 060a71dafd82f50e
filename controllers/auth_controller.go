package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tania/forms"
	"go-tania/session"
	"go-tania/utils"
)

// CookieOptions 会话 cookie 设置
type CookieOptions struct {
	Name   string
	MaxAge int
	Secure bool
}

// AuthController 处理登录、注销和账户相关的请求
type AuthController struct {
	Sessions *session.Manager
	Cookie   CookieOptions
	Logger   *zap.Logger
}

// NewAuthController 创建一个新的AuthController实例
func NewAuthController(sessions *session.Manager, cookie CookieOptions, logger *zap.Logger) *AuthController {
	return &AuthController{Sessions: sessions, Cookie: cookie, Logger: logger}
}

// LoginForm 登录页
func (c *AuthController) LoginForm(ctx *gin.Context) {
	schema, _ := forms.Lookup("login")
	utils.Success(ctx, gin.H{
		"form":     schema,
		"redirect": ctx.Query("redirect"),
	})
}

// Login 用户登录
func (c *AuthController) Login(ctx *gin.Context) {
	var req forms.LoginInput
	if !bind(ctx, &req) {
		return
	}

	sess, token, err := c.Sessions.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(ctx, c.Logger, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.Cookie.Name, token, c.Cookie.MaxAge, "/", "", c.Cookie.Secure, true)
	utils.Success(ctx, gin.H{
		"token":    token,
		"user":     sess.Store.User.Current(),
		"redirect": redirectTarget(ctx.Query("redirect"), sess),
	})
}

// redirectTarget 登录后的跳转地址，只接受站内路径
func redirectTarget(raw string, sess *session.Session) string {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") && !strings.HasPrefix(raw, "/\\") {
		return raw
	}
	if sess.Store.User.IsNewUser() {
		return sess.Intro.Position().Path()
	}
	return "/"
}

// Logout 注销
func (c *AuthController) Logout(ctx *gin.Context) {
	sess := currentSession(ctx)
	if err := c.Sessions.Destroy(ctx.Request.Context(), sess.ID); err != nil {
		c.Logger.Warn("destroy session", zap.String("session_id", sess.ID), zap.Error(err))
	}
	ctx.SetCookie(c.Cookie.Name, "", -1, "/", "", c.Cookie.Secure, true)
	utils.Success(ctx, gin.H{"redirect": "/auth/login"})
}

// Me 当前用户
func (c *AuthController) Me(ctx *gin.Context) {
	st := currentSession(ctx).Store
	utils.Success(ctx, gin.H{
		"user":              st.User.Current(),
		"can_see_navigator": st.User.CanSeeNavigator(),
		"is_new_user":       st.User.IsNewUser(),
		"current_farm":      st.Farm.Current(),
	})
}

// PasswordForm 修改密码页
func (c *AuthController) PasswordForm(ctx *gin.Context) {
	schema, _ := forms.Lookup("password")
	utils.Success(ctx, gin.H{"form": schema})
}

// ChangePassword 修改密码
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req forms.PasswordInput
	if !bind(ctx, &req) {
		return
	}
	if err := currentSession(ctx).Store.User.ChangePassword(ctx.Request.Context(), req.ToAPI()); err != nil {
		respondError(ctx, c.Logger, err)
		return
	}
	utils.Success(ctx, nil)
}
