package models

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatModel is one turn of the conversation attached to a note.
type ChatModel struct {
	Base
	OwnerID uint   `json:"-"       gorm:"index;not null"`
	NoteID  uint   `json:"note_id" gorm:"index;not null"`
	Role    string `json:"role"    gorm:"not null"`
	Content string `json:"content" gorm:"type:text;not null"`
}

func (ChatModel) TableName() string { return "chats" }
