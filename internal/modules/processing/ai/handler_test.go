package ai

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcfg "github.com/loci-space/core/internal/config"
	"github.com/loci-space/core/internal/middleware"
	"github.com/loci-space/core/internal/models"
	"github.com/loci-space/core/internal/modules/content/note"
)

func newTestChatRouter(t *testing.T, gw Gateway, cfg appcfg.AIConfig) (*gin.Engine, *note.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, notes := newTestStack(t, gw, cfg)
	router := gin.New()
	authMW := func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, uint(1))
		c.Next()
	}
	NewHandler(svc).RegisterRoutes(router.Group(""), authMW)
	return router, notes
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatUnconfiguredFailsBeforeStreaming(t *testing.T) {
	router, notes := newTestChatRouter(t, &stubGateway{}, appcfg.AIConfig{})

	n, err := notes.Create(1, &note.CreateNoteDTO{Content: "hi"})
	require.NoError(t, err)

	w := postJSON(router, "/ai/chat", fmt.Sprintf(`{"noteId":%d,"messages":[{"role":"user","content":"hello"}]}`, n.ID))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	// the failed turn must not leave any chat rows behind
	chats, err := notes.ListChats(n.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, chats)
}

func TestChatKeylessProviderFailsBeforeStreaming(t *testing.T) {
	cfg := appcfg.AIConfig{
		Providers: []appcfg.AIProvider{
			{ID: "keyless", Type: "openai", APIKey: "", Enabled: true},
		},
	}
	router, notes := newTestChatRouter(t, &stubGateway{}, cfg)

	n, err := notes.Create(1, &note.CreateNoteDTO{Content: "hi"})
	require.NoError(t, err)

	w := postJSON(router, "/ai/chat", fmt.Sprintf(`{"noteId":%d,"messages":[{"role":"user","content":"hello"}]}`, n.ID))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	chats, err := notes.ListChats(n.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, chats)
}

func TestChatForeignNoteIs404(t *testing.T) {
	router, notes := newTestChatRouter(t, &stubGateway{}, testAIConfig())

	n, err := notes.Create(2, &note.CreateNoteDTO{Content: "not yours"})
	require.NoError(t, err)

	w := postJSON(router, "/ai/chat", fmt.Sprintf(`{"noteId":%d,"messages":[{"role":"user","content":"hello"}]}`, n.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatStreamsBodyAndPersists(t *testing.T) {
	gw := &stubGateway{chunks: []string{"the ", "tide ", "remembers"}}
	router, notes := newTestChatRouter(t, gw, testAIConfig())

	n, err := notes.Create(1, &note.CreateNoteDTO{Content: "hi"})
	require.NoError(t, err)

	w := postJSON(router, "/ai/chat", fmt.Sprintf(`{"noteId":%d,"messages":[{"role":"user","content":"hello"}]}`, n.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "the tide remembers", w.Body.String())

	chats, err := notes.ListChats(n.ID, 1)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, models.RoleAssistant, chats[1].Role)
	assert.Equal(t, w.Body.String(), chats[1].Content)
}

func TestChatMidStreamFailureEmitsApology(t *testing.T) {
	gw := &stubGateway{chunks: []string{"I was saying"}, streamErr: errors.New("upstream reset")}
	router, notes := newTestChatRouter(t, gw, testAIConfig())

	n, err := notes.Create(1, &note.CreateNoteDTO{Content: "hi"})
	require.NoError(t, err)

	w := postJSON(router, "/ai/chat", fmt.Sprintf(`{"noteId":%d,"messages":[{"role":"user","content":"hello"}]}`, n.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "I was saying"+streamApology, w.Body.String())

	chats, err := notes.ListChats(n.ID, 1)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, models.RoleUser, chats[0].Role)
}

func TestSummaryEndpoint(t *testing.T) {
	gw := &stubGateway{completeText: `{"summary":"a letter"}`}
	router, notes := newTestChatRouter(t, gw, testAIConfig())

	n, err := notes.Create(1, &note.CreateNoteDTO{Content: "I miss home"})
	require.NoError(t, err)

	w := postJSON(router, "/ai/summary", fmt.Sprintf(`{"noteId":%d}`, n.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"summary":"a letter"`)

	w = postJSON(router, "/ai/summary", `{"noteId":99999}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSummaryEndpointUpstreamFailure(t *testing.T) {
	gw := &stubGateway{completeErr: errors.New("down")}
	router, notes := newTestChatRouter(t, gw, testAIConfig())

	n, err := notes.Create(1, &note.CreateNoteDTO{Content: "hi"})
	require.NoError(t, err)

	w := postJSON(router, "/ai/summary", fmt.Sprintf(`{"noteId":%d}`, n.ID))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
