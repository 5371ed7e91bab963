package services

import "fmt"

// DataSourceError 数据源错误
// 会话库不可达或查询失败时返回，对本次调用是致命错误，引擎内部不做重试
type DataSourceError struct {
	Op  string
	Err error
}

// Error 实现error接口
func (e *DataSourceError) Error() string {
	return fmt.Sprintf("数据源错误 [%s]: %v", e.Op, e.Err)
}

// Unwrap 支持errors.Is/As链式匹配
func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError 不支持的导出格式错误
type UnsupportedFormatError struct {
	Format string
}

// Error 实现error接口
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("不支持的导出格式: %s", e.Format)
}
