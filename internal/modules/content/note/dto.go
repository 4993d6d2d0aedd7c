package note

// CreateNoteDTO is the payload for creating a note.
type CreateNoteDTO struct {
	Content      string   `json:"content" binding:"required"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	LocationName string   `json:"locationName"`
	Emotion      string   `json:"emotion"`
	Mode         string   `json:"mode"`
	ImageURL     string   `json:"imageUrl"`
	IsPrivate    *bool    `json:"isPrivate"`
}

// UpdateSummaryDTO is the payload for replacing a note's AI summary.
type UpdateSummaryDTO struct {
	AISummary string `json:"aiSummary" binding:"required"`
}
