package services

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"worktrack-portal/internal/dto"
	"worktrack-portal/internal/entities"
	"worktrack-portal/internal/repositories"
	"worktrack-portal/pkg/constants"
	apperrors "worktrack-portal/pkg/errors"
	"worktrack-portal/pkg/filestorage"
	"worktrack-portal/pkg/service"
)

// Потолок размера загружаемого файла: 25 МБ.
const maxFileSize = 25 << 20

type OrderFileServiceInterface interface {
	UploadOrderFile(ctx context.Context, scope repositories.Scope, orderID uuid.UUID, fileHeader *multipart.FileHeader, d dto.UploadOrderFileDTO) (*dto.OrderFileResponseDTO, error)
	ListByOrder(ctx context.Context, scope repositories.Scope, orderID uuid.UUID) ([]dto.OrderFileResponseDTO, error)
	OpenByToken(ctx context.Context, token string) (io.ReadCloser, *entities.OrderFile, error)
}

type OrderFileService struct {
	fileRepository repositories.OrderFileRepositoryInterface
	orderService   OrderServiceInterface
	storage        filestorage.FileStorageInterface
	jwtService     service.JWTService
	logger         *zap.Logger
}

func NewOrderFileService(
	fileRepository repositories.OrderFileRepositoryInterface,
	orderService OrderServiceInterface,
	storage filestorage.FileStorageInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) OrderFileServiceInterface {
	return &OrderFileService{
		fileRepository: fileRepository,
		orderService:   orderService,
		storage:        storage,
		jwtService:     jwtService,
		logger:         logger,
	}
}

func (s *OrderFileService) UploadOrderFile(ctx context.Context, scope repositories.Scope, orderID uuid.UUID, fileHeader *multipart.FileHeader, d dto.UploadOrderFileDTO) (*dto.OrderFileResponseDTO, error) {
	if _, err := s.orderService.FindOrder(ctx, scope, orderID); err != nil {
		return nil, err
	}
	if fileHeader.Size > maxFileSize {
		return nil, apperrors.NewInvalidInputError("файл слишком большой: максимум 25 МБ")
	}

	category := d.Category
	if category == "" {
		category = constants.FileCategoryOther
	}
	if !constants.IsValidFileCategory(category) {
		return nil, apperrors.NewInvalidInputError("неизвестная категория файла: %s", category)
	}

	storagePath, err := s.storage.Save(fileHeader)
	if err != nil {
		return nil, err
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	file := &entities.OrderFile{
		OrderID:     orderID,
		UploadedBy:  uuid.NullUUID{UUID: scope.ViewerID, Valid: true},
		FileName:    fileHeader.Filename,
		FileSize:    fileHeader.Size,
		MimeType:    mimeType,
		Category:    category,
		StoragePath: storagePath,
	}
	created, err := s.fileRepository.CreateOrderFile(ctx, file)
	if err != nil {
		return nil, err
	}

	s.logger.Info("К заказу загружен файл",
		zap.String("order_id", orderID.String()),
		zap.String("file_id", created.ID.String()),
		zap.String("file_name", created.FileName),
		zap.Int64("size", created.FileSize),
	)
	return s.withDownloadURL(created), nil
}

func (s *OrderFileService) ListByOrder(ctx context.Context, scope repositories.Scope, orderID uuid.UUID) ([]dto.OrderFileResponseDTO, error) {
	if _, err := s.orderService.FindOrder(ctx, scope, orderID); err != nil {
		return nil, err
	}

	files, err := s.fileRepository.ListByOrder(ctx, scope, orderID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.OrderFileResponseDTO, 0, len(files))
	for i := range files {
		out = append(out, *s.withDownloadURL(&files[i]))
	}
	return out, nil
}

// OpenByToken открывает файл по подписанной ссылке. Токен сам по себе
// является авторизацией: он короткоживущий и выдается только тому,
// кто уже прошел проверку видимости при листинге.
func (s *OrderFileService) OpenByToken(ctx context.Context, token string) (io.ReadCloser, *entities.OrderFile, error) {
	storagePath, err := s.jwtService.ValidateFileToken(token)
	if err != nil {
		return nil, nil, err
	}

	file, err := s.fileRepository.FindOrderFileByPath(ctx, storagePath)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Open(storagePath)
	if err != nil {
		return nil, nil, err
	}
	return rc, file, nil
}

func (s *OrderFileService) withDownloadURL(file *entities.OrderFile) *dto.OrderFileResponseDTO {
	resp := &dto.OrderFileResponseDTO{OrderFile: *file}
	url, err := s.storage.SignedURL(file.StoragePath)
	if err != nil {
		s.logger.Warn("Не удалось подписать ссылку на файл",
			zap.String("file_id", file.ID.String()),
			zap.Error(err),
		)
		return resp
	}
	resp.DownloadURL = url
	return resp
}
