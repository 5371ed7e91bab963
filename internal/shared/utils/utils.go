package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FormatBytes 格式化字节数
// 以1024为阈值逐级换算 B/KB/MB/GB/TB/PB，保留两位小数
func FormatBytes(bytes uint64) string {
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}

	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}

	return fmt.Sprintf("%.2f %s", value, units[unit])
}

// FormatNumber 格式化整数，每三位插入千位分隔符
func FormatNumber(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}

	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	result := strings.Join(parts, ",")
	if neg {
		return "-" + result
	}
	return result
}

// NormalizeMAC 归一化MAC地址为统一小写形式
func NormalizeMAC(mac string) string {
	return strings.ToLower(strings.TrimSpace(mac))
}

// TimeAgo 时间差描述
func TimeAgo(t time.Time) string {
	diff := time.Since(t)

	if diff < time.Minute {
		return fmt.Sprintf("%d秒前", int(diff.Seconds()))
	} else if diff < time.Hour {
		return fmt.Sprintf("%d分钟前", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%d小时前", int(diff.Hours()))
	} else if diff < 30*24*time.Hour {
		return fmt.Sprintf("%d天前", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}

// GetProjectRoot 获取项目根目录
// 基于程序执行文件的位置推断项目根目录
func GetProjectRoot() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("获取程序执行路径失败: %v", err)
	}

	// 假设程序在 bin/ 目录下，项目根目录是 bin/ 的父目录
	projectRoot := filepath.Dir(filepath.Dir(execPath))

	return projectRoot, nil
}

// GetAbsolutePath 获取相对路径的绝对路径
func GetAbsolutePath(relativePath string) (string, error) {
	if filepath.IsAbs(relativePath) {
		return relativePath, nil
	}
	root, err := GetProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, relativePath), nil
}

// EnsureDir 确保目录存在，如果不存在则创建
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
