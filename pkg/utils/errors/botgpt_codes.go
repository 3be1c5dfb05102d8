package errors

// 业务错误码。
// 错误码格式: AABBCCC
// - AA: 服务代码 (02 用户, 20 对话, 21 文档)
// - BB: 类别代码
// - CCC: 序号

var (
	// 用户模块 (服务 02)
	ErrUserNotFound      = Register(New(MakeCode(ServiceUser, CategoryResource, 1), 404, "User not found", "用户不存在"))
	ErrUserAlreadyExists = Register(New(MakeCode(ServiceUser, CategoryConflict, 1), 409, "User already exists", "用户已存在"))

	// 对话模块 (服务 20)
	ErrConversationNotFound = Register(New(MakeCode(ServiceChat, CategoryResource, 1), 404, "Conversation not found", "对话不存在"))
	ErrMessageNotFound      = Register(New(MakeCode(ServiceChat, CategoryResource, 2), 404, "Message not found", "消息不存在"))
	ErrInvalidMode          = Register(New(MakeCode(ServiceChat, CategoryRequest, 1), 400, "Invalid conversation mode", "对话模式无效"))
	ErrEmptyMessage         = Register(New(MakeCode(ServiceChat, CategoryRequest, 2), 400, "Message content is empty", "消息内容为空"))
	ErrGenerationFailed     = Register(New(MakeCode(ServiceChat, CategoryInternal, 1), 500, "Response generation failed", "回复生成失败"))
	ErrGenerationTimeout    = Register(New(MakeCode(ServiceChat, CategoryTimeout, 1), 504, "Response generation timed out", "回复生成超时"))
	ErrEmbeddingFailed      = Register(New(MakeCode(ServiceChat, CategoryInternal, 2), 500, "Embedding failed", "向量化失败"))

	// 文档模块 (服务 21)
	ErrDocumentNotFound    = Register(New(MakeCode(ServiceDocument, CategoryResource, 1), 404, "Document not found", "文档不存在"))
	ErrUnsupportedFileType = Register(New(MakeCode(ServiceDocument, CategoryRequest, 1), 400, "Unsupported file type", "不支持的文件类型"))
	ErrFileTooLarge        = Register(New(MakeCode(ServiceDocument, CategoryRequest, 2), 400, "File exceeds the maximum allowed size", "文件超过大小限制"))
	ErrExtractionFailed    = Register(New(MakeCode(ServiceDocument, CategoryInternal, 1), 500, "Text extraction failed", "文本提取失败"))
	ErrEmptyChunkSet       = Register(New(MakeCode(ServiceDocument, CategoryInternal, 2), 500, "Chunking produced no chunks", "切块结果为空"))
	ErrIngestionFailed     = Register(New(MakeCode(ServiceDocument, CategoryInternal, 3), 500, "Document ingestion failed", "文档索引失败"))
)
