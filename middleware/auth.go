package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"go-tania/session"
	"go-tania/utils"
)

// LoginPath 登录页地址
const LoginPath = "/auth/login"

// sessionKey gin.Context 中保存会话的键
const sessionKey = "session"

// Authenticator 根据会话 JWT 返回会话
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Session, error)
}

// SessionToken 从 cookie 或 Authorization 头中取出会话 JWT
func SessionToken(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Auth 未登录时 GET 请求跳转到登录页，其余请求返回 401
func Auth(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c, cookieName)
		if token == "" {
			reject(c, "login required")
			return
		}
		sess, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			reject(c, "invalid or expired session")
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func reject(c *gin.Context, message string) {
	if c.Request.Method == http.MethodGet {
		c.Redirect(http.StatusFound, LoginPath+"?redirect="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
		return
	}
	utils.Unauthorized(c, message)
	c.Abort()
}

// CurrentSession 当前请求的会话，必须在 Auth 之后使用
func CurrentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

// SetSession 直接写入会话
func SetSession(c *gin.Context, sess *session.Session) {
	c.Set(sessionKey, sess)
}
