package models

// Emotion tags a note can carry. Unknown values fall back to EmotionCalm.
const (
	EmotionSad        = "sad"
	EmotionHappy      = "happy"
	EmotionCalm       = "calm"
	EmotionMysterious = "mysterious"
	EmotionAngry      = "angry"
)

// Interaction modes for a note's resident spirit.
const (
	ModeTrace  = "trace"
	ModeAwaken = "awaken"
)

// ValidEmotion reports whether e is one of the known emotion tags.
func ValidEmotion(e string) bool {
	switch e {
	case EmotionSad, EmotionHappy, EmotionCalm, EmotionMysterious, EmotionAngry:
		return true
	}
	return false
}

// ValidMode reports whether m is a known interaction mode.
func ValidMode(m string) bool {
	return m == ModeTrace || m == ModeAwaken
}

// NoteModel is a note anchored to a physical location.
type NoteModel struct {
	Base
	OwnerID      uint     `json:"owner_id"      gorm:"index;not null"`
	Content      string   `json:"content"       gorm:"type:text;not null"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	LocationName string   `json:"location_name"`
	Emotion      string   `json:"emotion"       gorm:"default:calm"`
	Mode         string   `json:"mode"          gorm:"default:trace"`
	AISummary    string   `json:"ai_summary"    gorm:"type:text"`
	ImageURL     string   `json:"image_url"`
	IsPrivate    bool     `json:"is_private"    gorm:"default:false;index"`
}

func (NoteModel) TableName() string { return "notes" }

// HasCoordinates reports whether both latitude and longitude are set.
func (n *NoteModel) HasCoordinates() bool {
	return n.Latitude != nil && n.Longitude != nil
}
