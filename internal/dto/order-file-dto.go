package dto

import "worktrack-portal/internal/entities"

type UploadOrderFileDTO struct {
	Category string `form:"category" validate:"omitempty,oneof=document image contract other"`
}

// OrderFileResponseDTO - файл плюс подписанная ссылка на скачивание.
type OrderFileResponseDTO struct {
	entities.OrderFile
	DownloadURL string `json:"download_url,omitempty"`
}
