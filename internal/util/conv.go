package util

import (
	"strconv"
)

// MustParseUint 解析路由中的数字主键(如 /tutorial/:id)。
// 非法输入返回 0,后续按主键查询自然落空,无需单独报错。
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}
