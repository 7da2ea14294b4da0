package service

import "errors"

// 错误分类：请求边界据此映射 HTTP 状态码，对外只暴露一个 error 字符串
var (
	// ErrInput 上传缺失、请求体不合法等调用方错误
	ErrInput = errors.New("输入错误")
	// ErrInference 推理后端失败或输出不合法
	ErrInference = errors.New("推理失败")
	// ErrPersistence 存储不可用（只记录日志，不阻断响应）
	ErrPersistence = errors.New("存储失败")
	// ErrComposition 叙述生成或 PDF 渲染失败
	ErrComposition = errors.New("报告生成失败")
	// ErrEmail 邮件发送失败
	ErrEmail = errors.New("邮件发送失败")
)
