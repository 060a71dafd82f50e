package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-tania/intro"
	"go-tania/utils"
)

// IntroRequired 没有农场的新用户先走引导
func IntroRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if !sess.Store.User.IsNewUser() {
			c.Next()
			return
		}
		if c.Request.Method != http.MethodGet {
			utils.Forbidden(c, "intro not completed")
			c.Abort()
			return
		}
		c.Redirect(http.StatusFound, sess.Intro.Position().Path())
		c.Abort()
	}
}

// IntroGuard 引导页面的导航守卫，已有农场的用户回到首页
func IntroGuard(to intro.Step) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if !sess.Store.User.IsNewUser() {
			if c.Request.Method != http.MethodGet {
				utils.Forbidden(c, "intro already completed")
				c.Abort()
				return
			}
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		// 提交顺序由 intro.Flow 保证
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		step, redirect := intro.Resolve(sess.LastStep(), to, sess.Intro.Drafts())
		if redirect {
			sess.SetLastStep(step)
			c.Redirect(http.StatusFound, step.Path())
			c.Abort()
			return
		}
		sess.SetLastStep(step)
		c.Next()
	}
}
