package ai

// ChatDTO is the payload for one streamed conversation turn.
type ChatDTO struct {
	NoteID       uint   `json:"noteId" binding:"required"`
	Messages     []Turn `json:"messages" binding:"required,min=1,dive"`
	NoteContent  string `json:"noteContent"`
	LocationName string `json:"locationName"`
}

// SummaryDTO is the payload for generating a note's summary.
type SummaryDTO struct {
	NoteID uint `json:"noteId" binding:"required"`
}
