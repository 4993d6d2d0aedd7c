package note

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/loci-space/core/internal/database"
	"github.com/loci-space/core/internal/models"
	"github.com/loci-space/core/internal/pkg/geo"
	"github.com/loci-space/core/internal/pkg/pagination"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db)
}

func ptr(v float64) *float64 { return &v }

func TestCreateAppliesDefaults(t *testing.T) {
	svc := newTestService(t)

	n, err := svc.Create(1, &CreateNoteDTO{Content: "hello"})
	require.NoError(t, err)
	assert.NotZero(t, n.ID)
	assert.Equal(t, models.EmotionCalm, n.Emotion)
	assert.Equal(t, models.ModeTrace, n.Mode)
	assert.False(t, n.IsPrivate)
	assert.Empty(t, n.AISummary)
}

func TestCreateUnknownEnumsFallBack(t *testing.T) {
	svc := newTestService(t)

	n, err := svc.Create(1, &CreateNoteDTO{Content: "hi", Emotion: "ecstatic", Mode: "dream"})
	require.NoError(t, err)
	assert.Equal(t, models.EmotionCalm, n.Emotion)
	assert.Equal(t, models.ModeTrace, n.Mode)

	n2, err := svc.Create(1, &CreateNoteDTO{Content: "hi", Emotion: models.EmotionAngry, Mode: models.ModeAwaken})
	require.NoError(t, err)
	assert.Equal(t, models.EmotionAngry, n2.Emotion)
	assert.Equal(t, models.ModeAwaken, n2.Mode)
}

func TestGetByIDHidesForeignNotes(t *testing.T) {
	svc := newTestService(t)

	n, err := svc.Create(1, &CreateNoteDTO{Content: "mine"})
	require.NoError(t, err)

	got, err := svc.GetByID(n.ID, 2)
	require.NoError(t, err)
	assert.Nil(t, got, "a foreign note must look like a missing one")

	got, err = svc.GetByID(99999, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.GetByID(n.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "mine", got.Content)
}

func TestUpdateEmotionTouchesOnlyEmotion(t *testing.T) {
	svc := newTestService(t)

	n, err := svc.Create(1, &CreateNoteDTO{Content: "still here", LocationName: "pier"})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateSummary(n.ID, 1, "a letter"))

	require.NoError(t, svc.UpdateEmotion(n.ID, 1, models.EmotionHappy))

	got, err := svc.GetByID(n.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.EmotionHappy, got.Emotion)
	assert.Equal(t, "a letter", got.AISummary)
	assert.Equal(t, "still here", got.Content)
	assert.Equal(t, "pier", got.LocationName)
}

func TestUpdateEmotionRejectsUnknownTag(t *testing.T) {
	svc := newTestService(t)

	n, err := svc.Create(1, &CreateNoteDTO{Content: "x"})
	require.NoError(t, err)
	assert.Error(t, svc.UpdateEmotion(n.ID, 1, "ecstatic"))
}

func TestDeleteCascadesChats(t *testing.T) {
	svc := newTestService(t)

	n, err := svc.Create(1, &CreateNoteDTO{Content: "bye"})
	require.NoError(t, err)
	_, err = svc.AppendChat(n.ID, 1, models.RoleUser, "are you there")
	require.NoError(t, err)
	_, err = svc.AppendChat(n.ID, 1, models.RoleAssistant, "always")
	require.NoError(t, err)

	found, err := svc.Delete(n.ID, 1)
	require.NoError(t, err)
	assert.True(t, found)

	var count int64
	require.NoError(t, svc.DB().Model(&models.ChatModel{}).Where("note_id = ?", n.ID).Count(&count).Error)
	assert.Zero(t, count)

	found, err = svc.Delete(n.ID, 1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteForeignNoteLeavesEverything(t *testing.T) {
	svc := newTestService(t)

	n, err := svc.Create(1, &CreateNoteDTO{Content: "keep"})
	require.NoError(t, err)
	_, err = svc.AppendChat(n.ID, 1, models.RoleUser, "hello")
	require.NoError(t, err)

	found, err := svc.Delete(n.ID, 2)
	require.NoError(t, err)
	assert.False(t, found)

	got, err := svc.GetByID(n.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, got)

	chats, err := svc.ListChats(n.ID, 1)
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func TestAppendChatRequiresOwnership(t *testing.T) {
	svc := newTestService(t)

	n, err := svc.Create(1, &CreateNoteDTO{Content: "private talk"})
	require.NoError(t, err)

	_, err = svc.AppendChat(n.ID, 2, models.RoleUser, "let me in")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListChatsAscending(t *testing.T) {
	svc := newTestService(t)

	n, err := svc.Create(1, &CreateNoteDTO{Content: "talk"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = svc.AppendChat(n.ID, 1, models.RoleUser, fmt.Sprintf("turn %d", i))
		require.NoError(t, err)
	}

	chats, err := svc.ListChats(n.ID, 1)
	require.NoError(t, err)
	require.Len(t, chats, 3)
	for i := 1; i < len(chats); i++ {
		assert.Less(t, chats[i-1].ID, chats[i].ID)
	}
}

func TestListChatsForeignNote(t *testing.T) {
	svc := newTestService(t)

	n, err := svc.Create(1, &CreateNoteDTO{Content: "talk"})
	require.NoError(t, err)

	_, err = svc.ListChats(n.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListPublicExcludesPrivate(t *testing.T) {
	svc := newTestService(t)
	private := true

	_, err := svc.Create(1, &CreateNoteDTO{Content: "secret", IsPrivate: &private})
	require.NoError(t, err)
	pub, err := svc.Create(2, &CreateNoteDTO{Content: "open"})
	require.NoError(t, err)

	notes, _, err := svc.ListPublic(pagination.Query{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, pub.ID, notes[0].ID)
}

func TestNearbyReturnsNotesInsideRadius(t *testing.T) {
	svc := newTestService(t)
	private := true

	near, err := svc.Create(1, &CreateNoteDTO{Content: "near", Latitude: ptr(39.905), Longitude: ptr(116.403)})
	require.NoError(t, err)
	_, err = svc.Create(1, &CreateNoteDTO{Content: "far", Latitude: ptr(39.95), Longitude: ptr(116.40)})
	require.NoError(t, err)
	_, err = svc.Create(1, &CreateNoteDTO{Content: "hidden", Latitude: ptr(39.905), Longitude: ptr(116.403), IsPrivate: &private})
	require.NoError(t, err)
	_, err = svc.Create(1, &CreateNoteDTO{Content: "nowhere"})
	require.NoError(t, err)

	notes, err := svc.Nearby(geo.Point{Latitude: 39.90, Longitude: 116.40})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, near.ID, notes[0].ID)
}

func TestNearbyRadiusBoundary(t *testing.T) {
	svc := newTestService(t)
	center := geo.Point{Latitude: 39.90, Longitude: 116.40}

	// 0.008993° of latitude is just under 1 km, 0.009° just over.
	edge, err := svc.Create(1, &CreateNoteDTO{Content: "edge", Latitude: ptr(center.Latitude + 0.008993), Longitude: ptr(center.Longitude)})
	require.NoError(t, err)
	beyond, err := svc.Create(1, &CreateNoteDTO{Content: "beyond", Latitude: ptr(center.Latitude + 0.009), Longitude: ptr(center.Longitude)})
	require.NoError(t, err)

	require.LessOrEqual(t, geo.Distance(center, geo.Point{Latitude: *edge.Latitude, Longitude: *edge.Longitude}), NearbyRadiusKm)
	require.Greater(t, geo.Distance(center, geo.Point{Latitude: *beyond.Latitude, Longitude: *beyond.Longitude}), NearbyRadiusKm)

	notes, err := svc.Nearby(center)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, edge.ID, notes[0].ID)
}

func TestNearbyCapsResults(t *testing.T) {
	svc := newTestService(t)

	for i := 0; i < nearbyResultLimit+10; i++ {
		_, err := svc.Create(1, &CreateNoteDTO{Content: fmt.Sprintf("n%d", i), Latitude: ptr(39.90), Longitude: ptr(116.40)})
		require.NoError(t, err)
	}

	notes, err := svc.Nearby(geo.Point{Latitude: 39.90, Longitude: 116.40})
	require.NoError(t, err)
	assert.Len(t, notes, nearbyResultLimit)
	// newest first
	for i := 1; i < len(notes); i++ {
		assert.Greater(t, notes[i-1].ID, notes[i].ID)
	}
}

func TestListOwnScopedToOwner(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(1, &CreateNoteDTO{Content: "a"})
	require.NoError(t, err)
	_, err = svc.Create(2, &CreateNoteDTO{Content: "b"})
	require.NoError(t, err)

	notes, pag, err := svc.ListOwn(1, pagination.Query{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "a", notes[0].Content)
	assert.Equal(t, int64(1), pag.Total)
}
