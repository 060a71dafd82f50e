// Package intro 新用户的三步引导：创建农场、水源、区域
package intro

import "fmt"

// Step 引导步骤，值即路由名
type Step string

// 三个引导步骤
const (
	IntroFarmCreate      Step = "IntroFarmCreate"
	IntroReservoirCreate Step = "IntroReservoirCreate"
	IntroAreaCreate      Step = "IntroAreaCreate"
)

var order = []Step{IntroFarmCreate, IntroReservoirCreate, IntroAreaCreate}

var paths = map[Step]string{
	IntroFarmCreate:      "/intro/farm",
	IntroReservoirCreate: "/intro/reservoir",
	IntroAreaCreate:      "/intro/area",
}

// Steps 按顺序返回全部步骤
func Steps() []Step {
	return append([]Step(nil), order...)
}

// Path 步骤对应的页面路径
func (s Step) Path() string {
	return paths[s]
}

func (s Step) index() int {
	for i, st := range order {
		if st == s {
			return i
		}
	}
	return -1
}

// Valid 是否是已知步骤
func (s Step) Valid() bool {
	return s.index() >= 0
}

// ParseStep 按路径或路由名解析步骤
func ParseStep(v string) (Step, error) {
	for _, s := range order {
		if v == string(s) || v == paths[s] {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown intro step %q", v)
}

// transitions 允许的前进、后退
var transitions = map[[2]Step]struct{}{
	{IntroFarmCreate, IntroReservoirCreate}: {},
	{IntroReservoirCreate, IntroFarmCreate}: {},
	{IntroReservoirCreate, IntroAreaCreate}: {},
	{IntroAreaCreate, IntroReservoirCreate}: {},
}

// Allowed from 到 to 是否在允许列表中
func Allowed(from, to Step) bool {
	_, ok := transitions[[2]Step{from, to}]
	return ok
}

// Resolve 计算导航目标，redirect 为 true 时应跳转到返回的步骤。
// 请求的步骤等于当前位置时总是放行；列表中的跳转不能越过当前位置。
func Resolve(from, to Step, d Drafts) (Step, bool) {
	position := d.Position()
	if to == position {
		return to, false
	}
	if Allowed(from, to) && to.index() <= position.index() {
		return to, false
	}
	return position, true
}
