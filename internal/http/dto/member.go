package dto

import (
	"time"

	"wiw3ch.app/matchmaker/internal/model"
)

type RegisterMemberRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Email     string `json:"email" binding:"required,email"`
}

type MemberResponse struct {
	ID        int64     `json:"id,string"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func ToMemberResponse(m *model.Member) *MemberResponse {
	return &MemberResponse{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}
