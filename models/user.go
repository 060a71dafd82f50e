package models

// User 当前登录用户
type User struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
	// Intro 为 true 表示仍需完成引导流程
	Intro bool `json:"intro"`
}

// IsAuthenticated uid 非空即已登录
func (u User) IsAuthenticated() bool {
	return u.UID != ""
}
