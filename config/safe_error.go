package config

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
// debug 模式（或配置未初始化的开发场景）返回原始错误，便于排查
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
