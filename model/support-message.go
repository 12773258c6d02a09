package model

type SupportMessage struct {
	DTO
	ConversationId string `gorm:"index;not null" json:"conversationId"`
	Sender         string `gorm:"not null" json:"sender"` // user, admin
	UserId         *uint  `json:"userId,omitempty"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	Message        string `gorm:"not null" json:"message"`
	Status         string `gorm:"default:new" json:"status"` // new, read
	IP             string `json:"-"`
	UserAgent      string `json:"-"`
}

type SupportMessages []SupportMessage

type SendSupportMessageInput struct {
	ConversationId string `json:"conversationId"`
	Name           string `json:"name"`
	Email          string `validate:"omitempty,email" json:"email"`
	Message        string `validate:"required,min=2" json:"message"`
}

type AdminReplyInput struct {
	ConversationId string `validate:"required" json:"conversationId"`
	Message        string `validate:"required" json:"message"`
}

type UpdateMessageStatusInput struct {
	Id     uint   `validate:"required,gt=0" json:"id"`
	Status string `validate:"required,oneof=new read" json:"status"`
}
