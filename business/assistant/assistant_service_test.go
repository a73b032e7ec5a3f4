package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myTourGuide/domain"
)

type fakeSessionRepo struct {
	sessions map[string]domain.ChatSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]domain.ChatSession{}}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *domain.ChatSession) error {
	session.ID = uint64(len(f.sessions) + 1)
	f.sessions[session.SessionID] = *session
	return nil
}

func (f *fakeSessionRepo) FindBySessionID(ctx context.Context, sessionID string) (domain.ChatSession, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return domain.ChatSession{}, errors.New("chat session not found")
	}
	return session, nil
}

func (f *fakeSessionRepo) FindByUserID(ctx context.Context, userID uint) ([]domain.ChatSession, error) {
	var out []domain.ChatSession
	for _, session := range f.sessions {
		if session.UserID == userID {
			out = append(out, session)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) UpdateTitle(ctx context.Context, sessionID, title string) error {
	session, ok := f.sessions[sessionID]
	if !ok {
		return errors.New("chat session not found")
	}
	session.Title = title
	f.sessions[sessionID] = session
	return nil
}

type fakeMessageRepo struct {
	messages []domain.ChatMessage
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *domain.ChatMessage) error {
	message.ID = uint64(len(f.messages) + 1)
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeMessageRepo) FindBySessionID(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	for _, message := range f.messages {
		if message.SessionID == sessionID {
			out = append(out, message)
		}
	}
	return out, nil
}

type fakeChatClient struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeChatClient) Generate(ctx context.Context, systemPrompt string, history []domain.ChatMessage, message string) (string, error) {
	f.lastPrompt = systemPrompt
	return f.response, f.err
}

type fakeCatalog struct {
	spots []domain.ScenicSpot
}

func (f *fakeCatalog) FindAll(ctx context.Context) ([]domain.ScenicSpot, error) {
	return f.spots, nil
}

func (f *fakeCatalog) FindByIDs(ctx context.Context, ids []uint64) ([]domain.ScenicSpot, error) {
	var out []domain.ScenicSpot
	for _, spot := range f.spots {
		for _, id := range ids {
			if spot.ID == id {
				out = append(out, spot)
				break
			}
		}
	}
	return out, nil
}

type fakeCategories struct{}

func (fakeCategories) FindAll(ctx context.Context) ([]domain.ScenicCategory, error) {
	return []domain.ScenicCategory{{ID: 5, Name: "Nature"}}, nil
}

type noopRatings struct{}

func (noopRatings) FillRatings(ctx context.Context, spots []domain.ScenicSpot) error { return nil }

func newTestAssistant(client *fakeChatClient) (*assistantService, *fakeSessionRepo, *fakeMessageRepo) {
	sessions := newFakeSessionRepo()
	messages := &fakeMessageRepo{}
	catalog := &fakeCatalog{spots: []domain.ScenicSpot{
		{ID: 10, Name: "West Lake", Location: "Hangzhou", Price: 0, CategoryID: 5},
		{ID: 11, Name: "Old Town", Location: "Lijiang", Price: 40, CategoryID: 5},
	}}
	svc := NewAssistantService(sessions, messages, client, catalog, fakeCategories{}, noopRatings{})
	return svc, sessions, messages
}

func TestChatCreatesSessionAndParsesStructuredOutput(t *testing.T) {
	client := &fakeChatClient{
		response: `{"reply": "Try West Lake.", "recommendations": [{"scenic_id": 10, "reason": "free entry"}]}`,
	}
	svc, sessions, messages := newTestAssistant(client)

	reply, err := svc.Chat(context.Background(), 1, "", "somewhere scenic and cheap?")
	require.NoError(t, err)

	assert.NotEmpty(t, reply.SessionID)
	assert.Equal(t, "Try West Lake.", reply.Message)
	require.Len(t, reply.Recommendations, 1)
	assert.Equal(t, uint64(10), reply.Recommendations[0].ScenicID)
	assert.Equal(t, "West Lake", reply.Recommendations[0].Name)
	assert.Equal(t, "Nature", reply.Recommendations[0].CategoryName)
	assert.Equal(t, "free entry", reply.Recommendations[0].Reason)

	// session title is seeded from the first message
	session := sessions.sessions[reply.SessionID]
	assert.Equal(t, "somewhere scenic and cheap?", session.Title)

	// the user turn and the assistant turn are both persisted
	require.Len(t, messages.messages, 2)
	assert.Equal(t, domain.ChatRoleUser, messages.messages[0].Role)
	assert.Equal(t, domain.ChatRoleAssistant, messages.messages[1].Role)
}

func TestChatStripsMarkdownFences(t *testing.T) {
	client := &fakeChatClient{
		response: "```json\n{\"reply\": \"Old Town fits.\", \"recommendations\": [{\"scenic_id\": 11, \"reason\": \"historic\"}]}\n```",
	}
	svc, _, _ := newTestAssistant(client)

	reply, err := svc.Chat(context.Background(), 1, "", "anything historic?")
	require.NoError(t, err)

	assert.Equal(t, "Old Town fits.", reply.Message)
	require.Len(t, reply.Recommendations, 1)
	assert.Equal(t, uint64(11), reply.Recommendations[0].ScenicID)
}

func TestChatDegradesOnUnstructuredOutput(t *testing.T) {
	client := &fakeChatClient{response: "I am not sure, could you tell me more?"}
	svc, _, _ := newTestAssistant(client)

	reply, err := svc.Chat(context.Background(), 1, "", "hm")
	require.NoError(t, err)

	assert.Equal(t, "I am not sure, could you tell me more?", reply.Message)
	assert.Empty(t, reply.Recommendations)
}

func TestChatDropsUnknownAndDuplicateSpots(t *testing.T) {
	client := &fakeChatClient{
		response: `{"reply": "ok", "recommendations": [` +
			`{"scenic_id": 999, "reason": "made up"},` +
			`{"scenic_id": 10, "reason": "first"},` +
			`{"scenic_id": 10, "reason": "again"}]}`,
	}
	svc, _, _ := newTestAssistant(client)

	reply, err := svc.Chat(context.Background(), 1, "", "anything?")
	require.NoError(t, err)

	require.Len(t, reply.Recommendations, 1)
	assert.Equal(t, uint64(10), reply.Recommendations[0].ScenicID)
	assert.Equal(t, "first", reply.Recommendations[0].Reason)
}

func TestChatCatalogInPrompt(t *testing.T) {
	client := &fakeChatClient{response: `{"reply": "ok", "recommendations": []}`}
	svc, _, _ := newTestAssistant(client)

	_, err := svc.Chat(context.Background(), 1, "", "hello")
	require.NoError(t, err)

	assert.True(t, strings.Contains(client.lastPrompt, "West Lake"))
	assert.True(t, strings.Contains(client.lastPrompt, "id=11"))
}

func TestChatSessionOwnership(t *testing.T) {
	client := &fakeChatClient{response: `{"reply": "ok", "recommendations": []}`}
	svc, _, _ := newTestAssistant(client)

	reply, err := svc.Chat(context.Background(), 1, "", "hello")
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), 2, reply.SessionID, "hijack")
	assert.EqualError(t, err, "chat session does not belong to user")

	_, err = svc.GetSessionMessages(context.Background(), 2, reply.SessionID)
	assert.EqualError(t, err, "chat session does not belong to user")
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	svc, _, _ := newTestAssistant(&fakeChatClient{})

	_, err := svc.Chat(context.Background(), 1, "", "   ")
	assert.EqualError(t, err, "message is required")
}

func TestChatPropagatesModelFailure(t *testing.T) {
	client := &fakeChatClient{err: errors.New("quota exceeded")}
	svc, _, _ := newTestAssistant(client)

	_, err := svc.Chat(context.Background(), 1, "", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model generation failed")
}

func TestTruncateKeepsShortTitles(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	assert.Len(t, []rune(truncate(strings.Repeat("x", 100), 40)), 40)
}
