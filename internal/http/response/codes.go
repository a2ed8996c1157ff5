package response

// 业务状态码，写入响应体 status_code，HTTP 状态始终为 200
const (
	CodeOK           = 0
	CodeBadRequest   = 400 // 参数错误、地址缺字段、配送区域不可达
	CodeUnauthorized = 401 // 未登录或 Token 失效
	CodeForbidden    = 403 // 后台权限不足
	CodeNotFound     = 404
	// CodeConflict 同一会话已有支付在处理
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeInternal        = 500
	// CodeBadGateway 支付网关扣款失败，可重试
	CodeBadGateway = 502
)
