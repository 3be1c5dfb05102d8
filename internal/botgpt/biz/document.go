package biz

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kart-io/logger"
	"gorm.io/gorm"

	"github.com/NikhilAnand12/BOT-GPT/internal/botgpt/store"
	"github.com/NikhilAnand12/BOT-GPT/internal/model"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/errors"
	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/id"
)

// allowedExtensions 支持提取文本的文件扩展名。
var allowedExtensions = map[string]string{
	".pdf": "pdf",
	".txt": "txt",
	".md":  "md",
}

// DocumentConfig 文档上传配置。
type DocumentConfig struct {
	// UploadDir 上传文件的存储目录。
	UploadDir string
	// MaxFileSize 单个文件的最大字节数。
	MaxFileSize int64
}

// DocumentService handles document upload, indexing and lifecycle.
type DocumentService struct {
	store    store.Factory
	ingestor *Ingestor
	config   *DocumentConfig
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(factory store.Factory, ingestor *Ingestor, config *DocumentConfig) *DocumentService {
	return &DocumentService{
		store:    factory,
		ingestor: ingestor,
		config:   config,
	}
}

// Upload 保存上传的文件并同步建立索引。
// 索引失败时删除已保存的文件和文档记录，不留下半成品状态。
func (s *DocumentService) Upload(ctx context.Context, userID, filename string, size int64, src io.Reader) (*model.Document, error) {
	if _, err := s.store.Users().Get(ctx, userID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	fileType, ok := allowedExtensions[ext]
	if !ok {
		return nil, errors.ErrUnsupportedFileType
	}
	if size > s.config.MaxFileSize {
		return nil, errors.ErrFileTooLarge
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return nil, errors.ErrInternal.WithCause(err)
	}

	filePath := filepath.Join(s.config.UploadDir, fmt.Sprintf("%s_%s", userID, filepath.Base(filename)))
	written, err := saveFile(filePath, src, s.config.MaxFileSize)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		ID:       id.NewUUID(),
		UserID:   userID,
		Filename: filename,
		FilePath: filePath,
		FileSize: written,
		FileType: fileType,
		Status:   model.DocumentStatusPending,
	}
	if err := s.store.Documents().Create(ctx, doc); err != nil {
		_ = os.Remove(filePath)
		return nil, errors.ErrDatabase.WithCause(err)
	}

	chunkCount, err := s.ingestor.IngestDocument(ctx, doc)
	if err != nil {
		logger.Errorw("文档索引失败，回滚上传", "document_id", doc.ID, "error", err.Error())
		_ = s.store.Documents().Delete(ctx, doc.ID)
		_ = os.Remove(filePath)
		return nil, err
	}

	doc.ChunkCount = chunkCount
	doc.Status = model.DocumentStatusIndexed
	if err := s.store.Documents().Save(ctx, doc); err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}

	logger.Infow("文档上传完成", "document_id", doc.ID, "user_id", userID, "chunks", chunkCount)

	return doc, nil
}

// Get retrieves a document by id.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*model.Document, error) {
	doc, err := s.store.Documents().Get(ctx, documentID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrDocumentNotFound
		}
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return doc, nil
}

// List lists documents of a user ordered by upload time desc.
func (s *DocumentService) List(ctx context.Context, userID string, offset, limit int) (*model.DocumentList, error) {
	count, docs, err := s.store.Documents().List(ctx, userID, offset, limit)
	if err != nil {
		return nil, errors.ErrDatabase.WithCause(err)
	}
	return &model.DocumentList{TotalCount: count, Documents: docs}, nil
}

// Delete 删除文档：先清理向量索引中的块，再删除文件和记录。
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return err
	}

	deleted, err := s.ingestor.DeleteDocumentChunks(ctx, documentID)
	if err != nil {
		return err
	}
	logger.Infow("已删除文档块", "document_id", documentID, "chunks", deleted)

	if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
		logger.Warnw("删除文件失败", "path", doc.FilePath, "error", err.Error())
	}

	if err := s.store.Documents().Delete(ctx, documentID); err != nil {
		return errors.ErrDatabase.WithCause(err)
	}
	return nil
}

// saveFile 将上传内容写入目标路径，写入超出 maxSize 时中止并清理。
func saveFile(path string, src io.Reader, maxSize int64) (int64, error) {
	dst, err := os.Create(path)
	if err != nil {
		return 0, errors.ErrInternal.WithCause(err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(src, maxSize+1))
	if err != nil {
		_ = os.Remove(path)
		return 0, errors.ErrInternal.WithCause(err)
	}
	if written > maxSize {
		_ = os.Remove(path)
		return 0, errors.ErrFileTooLarge
	}
	return written, nil
}
