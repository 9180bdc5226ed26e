package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"worktrack-portal/pkg/service"
)

// FileStorageInterface определяет контракт для сервиса хранения файлов.
// Семантика записи - "записать один раз, не перезаписывать": путь всегда
// уникален, существующий файл никогда не затирается.
type FileStorageInterface interface {
	Save(fileHeader *multipart.FileHeader) (storagePath string, err error)
	Open(storagePath string) (io.ReadCloser, error)
	// SignedURL выдает подписанную ссылку на скачивание с ограниченным
	// сроком жизни (по умолчанию 5 минут).
	SignedURL(storagePath string) (string, error)
}

type LocalFileStorage struct {
	basePath     string
	baseURL      string
	jwtService   service.JWTService
	signedURLTTL time.Duration
}

func NewLocalFileStorage(basePath, baseURL string, jwtSvc service.JWTService, signedURLTTL time.Duration) (FileStorageInterface, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию для хранения файлов: %w", err)
		}
	}
	return &LocalFileStorage{
		basePath:     basePath,
		baseURL:      baseURL,
		jwtService:   jwtSvc,
		signedURLTTL: signedURLTTL,
	}, nil
}

func (s *LocalFileStorage) Save(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Уникальное имя файла, чтобы избежать коллизий
	ext := filepath.Ext(fileHeader.Filename)
	uniqueFileName := fmt.Sprintf("%s-%s%s", time.Now().Format("2006-01-02"), uuid.New().String(), ext)

	// Поддиректория на основе текущей даты для лучшей организации
	datePath := time.Now().Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, datePath)
	if err := os.MkdirAll(fullDirPath, 0755); err != nil {
		return "", err
	}

	// O_EXCL: если файл с таким путем уже существует - это ошибка, а не перезапись.
	dst, err := os.OpenFile(filepath.Join(fullDirPath, uniqueFileName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("не удалось создать файл в хранилище: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(datePath, uniqueFileName)), nil
}

func (s *LocalFileStorage) Open(storagePath string) (io.ReadCloser, error) {
	// Не даем выйти за пределы basePath
	clean := filepath.Clean(filepath.FromSlash(storagePath))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("недопустимый путь к файлу")
	}
	return os.Open(filepath.Join(s.basePath, clean))
}

func (s *LocalFileStorage) SignedURL(storagePath string) (string, error) {
	token, err := s.jwtService.SignFilePath(storagePath, s.signedURLTTL)
	if err != nil {
		return "", fmt.Errorf("не удалось подписать ссылку на файл: %w", err)
	}
	return fmt.Sprintf("%s/api/files/download?token=%s", s.baseURL, token), nil
}
