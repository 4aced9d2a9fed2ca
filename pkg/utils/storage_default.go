//go:build !android

package utils

// EnsureStorageDir 非 Android 平台的空实现
// gdata 会自动创建存储目录
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 非 Android 平台返回空字符串（使用 gdata 默认位置）
func GetStoragePath() string {
	return ""
}
