package service

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-gateway/internal/platform/backend"
)

type memorySnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{data: map[string][]byte{}}
}

func (m *memorySnapshots) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return context.Canceled // any non-nil error means miss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memorySnapshots) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *memorySnapshots) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memorySnapshots) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

type fakeSupportBackend struct {
	mu           sync.Mutex
	chatCalls    int
	messageCalls map[string]int
	sent         []*backend.SendSupportMessage
	uploads      []string
}

func newFakeSupportBackend() *fakeSupportBackend {
	return &fakeSupportBackend{messageCalls: map[string]int{}}
}

func (f *fakeSupportBackend) GetSupportChats(context.Context) ([]backend.SupportChat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatCalls++
	return []backend.SupportChat{{UserID: "u1", LastMessage: "hi"}}, nil
}

func (f *fakeSupportBackend) GetSupportMessages(_ context.Context, userID string) ([]backend.SupportMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messageCalls[userID]++
	return []backend.SupportMessage{{ID: "m1", UserID: userID, Message: "hello"}}, nil
}

func (f *fakeSupportBackend) SendSupportMessage(_ context.Context, msg *backend.SendSupportMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSupportBackend) Upload(_ context.Context, name string, _ io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, name)
	return "https://cdn.example/" + name, nil
}

func (f *fakeSupportBackend) calls(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messageCalls[userID]
}

func TestPollerPublishesChatSnapshot(t *testing.T) {
	client := newFakeSupportBackend()
	store := newMemorySnapshots()
	p := NewPoller(client, store).WithIntervals(5*time.Millisecond, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	require.Eventually(t, func() bool { return store.has(chatsCacheKey) }, time.Second, time.Millisecond)

	cancel()
	p.Stop()

	var chats []backend.SupportChat
	require.NoError(t, store.Get(context.Background(), chatsCacheKey, &chats))
	require.Len(t, chats, 1)
	assert.Equal(t, "u1", chats[0].UserID)
}

func TestPollerRetargetCancelsPreviousThread(t *testing.T) {
	client := newFakeSupportBackend()
	store := newMemorySnapshots()
	p := NewPoller(client, store).WithIntervals(time.Hour, 2*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	p.Watch("u1")
	require.Eventually(t, func() bool { return client.calls("u1") >= 2 }, time.Second, time.Millisecond)

	p.Watch("u2")
	assert.Equal(t, "u2", p.ActiveUser())
	require.Eventually(t, func() bool { return client.calls("u2") >= 2 }, time.Second, time.Millisecond)

	// The first thread's task is dead: its call count stops moving.
	settled := client.calls("u1")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, client.calls("u1"))

	p.Stop()
}

func TestPollerStopKillsAllTasks(t *testing.T) {
	client := newFakeSupportBackend()
	store := newMemorySnapshots()
	p := NewPoller(client, store).WithIntervals(2*time.Millisecond, 2*time.Millisecond)

	p.Start(context.Background())
	p.Watch("u1")
	require.Eventually(t, func() bool { return client.calls("u1") >= 1 }, time.Second, time.Millisecond)

	p.Stop()

	settledChats := client.chatCalls
	settledThread := client.calls("u1")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settledChats, client.chatCalls)
	assert.Equal(t, settledThread, client.calls("u1"))
}

func TestInboxPrefersSnapshot(t *testing.T) {
	client := newFakeSupportBackend()
	store := newMemorySnapshots()
	require.NoError(t, store.Set(context.Background(), chatsCacheKey,
		[]backend.SupportChat{{UserID: "snapshot-user"}}, time.Minute))

	inbox := NewInboxService(client, store)
	chats, err := inbox.Chats(context.Background())
	require.NoError(t, err)

	require.Len(t, chats, 1)
	assert.Equal(t, "snapshot-user", chats[0].UserID)
	assert.Zero(t, client.chatCalls)
}

func TestInboxFallsBackToUpstream(t *testing.T) {
	client := newFakeSupportBackend()
	inbox := NewInboxService(client, newMemorySnapshots())

	chats, err := inbox.Chats(context.Background())
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, 1, client.chatCalls)
}

func TestInboxSendUploadsMediaFirst(t *testing.T) {
	client := newFakeSupportBackend()
	store := newMemorySnapshots()
	require.NoError(t, store.Set(context.Background(), threadCacheKey+"u1",
		[]backend.SupportMessage{}, time.Minute))

	inbox := NewInboxService(client, store)
	err := inbox.Send(context.Background(), "u1", Outgoing{
		Message:   "here you go",
		MediaName: "photo.png",
		MediaType: "image",
		Media:     strings.NewReader("img"),
	})
	require.NoError(t, err)

	require.Len(t, client.sent, 1)
	assert.Equal(t, "https://cdn.example/photo.png", client.sent[0].MediaURL)
	assert.Equal(t, "image", client.sent[0].MediaType)

	// The stale thread snapshot is dropped after replying.
	assert.False(t, store.has(threadCacheKey+"u1"))
}

func TestInboxSendRequiresContent(t *testing.T) {
	inbox := NewInboxService(newFakeSupportBackend(), newMemorySnapshots())
	assert.Error(t, inbox.Send(context.Background(), "u1", Outgoing{}))
	assert.Error(t, inbox.Send(context.Background(), "", Outgoing{Message: "x"}))
}
