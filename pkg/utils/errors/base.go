package errors

// 通用错误 (服务 00)
var (
	// OK indicates success. Not an error; used for the zero code.
	OK = &Errno{Code: 0, HTTP: 200, MessageEN: "OK", MessageZH: "成功"}

	ErrInvalidParam = Register(New(MakeCode(ServiceCommon, CategoryRequest, 1), 400, "Invalid request parameters", "请求参数无效"))
	ErrNotFound     = Register(New(MakeCode(ServiceCommon, CategoryResource, 1), 404, "Resource not found", "资源不存在"))
	ErrInternal     = Register(New(MakeCode(ServiceCommon, CategoryInternal, 1), 500, "Internal server error", "服务器内部错误"))
	ErrTimeout      = Register(New(MakeCode(ServiceCommon, CategoryTimeout, 1), 504, "Operation timed out", "操作超时"))
)

// 基础设施错误 (服务 10/11)
var (
	ErrDatabase    = Register(New(MakeCode(ServiceInfraDB, CategoryDatabase, 1), 500, "Database error", "数据库错误"))
	ErrVectorStore = Register(New(MakeCode(ServiceInfraVector, CategoryInternal, 1), 500, "Vector store error", "向量存储错误"))
)
