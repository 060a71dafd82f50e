package utils

import "strconv"

// PageLength 每页条数
const PageLength = 10

// CalculateNumberOfPages 根据总条数计算页数，向上取整
func CalculateNumberOfPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageLength - 1) / PageLength
}

// PrependWindow 将 item 放到列表头部，超出 limit 时丢弃末尾元素
func PrependWindow[T any](items []T, item T, limit int) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	out = append(out, items...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ParsePage 解析页码参数，非法或小于1时返回1
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
