package client

import "photodesk/internal/domain"

type CreateClientRequest struct {
	Name    string         `json:"name" binding:"required"`
	Email   string         `json:"email" binding:"omitempty,email"`
	Phone   string         `json:"phone"`
	Country domain.Country `json:"country" binding:"required"`
	Notes   string         `json:"notes"`
}

type UpdateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

type ListQuery struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}
