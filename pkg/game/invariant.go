package game

import (
	"fmt"
	"log"
)

// AssertInvariant 检查程序不变量
//
// 不变量被破坏属于编程错误：默认构建直接 panic，
// 使用 -tags release 构建时只记录日志。
func AssertInvariant(cond bool, format string, args ...interface{}) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if strictInvariants {
		panic("invariant violated: " + msg)
	}
	log.Printf("[Invariant] violated: %s", msg)
}

// StrictInvariants 当前构建是否在不变量被破坏时 panic
func StrictInvariants() bool {
	return strictInvariants
}
