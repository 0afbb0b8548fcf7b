package notification

import (
	"context"
	"sync"
	"testing"

	notificationRepo "flynext/database/repository/notification"
	userRepo "flynext/database/repository/user"
	"flynext/models"
	"flynext/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepo struct {
	notificationRepo.NotificationRepository
	mu     sync.Mutex
	items  []models.Notification
	counts int
}

func (m *memRepo) Create(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *n)
	return nil
}

func (m *memRepo) MarkRead(_ context.Context, recipientID string, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var n int64
	for i := range m.items {
		it := &m.items[i]
		if want[it.ID] && it.Recipient() == recipientID && !it.IsRead {
			it.IsRead = true
			n++
		}
	}
	return n, nil
}

func (m *memRepo) CountUnread(_ context.Context, recipientID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts++
	var n int64
	for _, it := range m.items {
		if it.Recipient() == recipientID && !it.IsRead {
			n++
		}
	}
	return n, nil
}

type memBadges struct {
	values map[string]int64
}

func (b *memBadges) Get(_ context.Context, id string) (int64, bool, error) {
	v, ok := b.values[id]
	return v, ok, nil
}

func (b *memBadges) Set(_ context.Context, id string, n int64) error {
	b.values[id] = n
	return nil
}

func (b *memBadges) Invalidate(_ context.Context, id string) error {
	delete(b.values, id)
	return nil
}

type recordingQueue struct {
	tasks []*asynq.Task
}

func (q *recordingQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{}, nil
}

type stubUserRepo struct {
	userRepo.UserRepository
	users map[string]models.User
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u := s.users[id]
	return &u, nil
}

type recordingPusher struct {
	tokens []string
}

func (p *recordingPusher) Push(_ context.Context, token, _, _ string, _ map[string]string) error {
	p.tokens = append(p.tokens, token)
	return nil
}

func TestUnreadCountUsesCache(t *testing.T) {
	repo := &memRepo{}
	badges := &memBadges{values: map[string]int64{}}
	queue := &recordingQueue{}
	svc := &DefaultNotificationService{Repo: repo, Badges: badges, Queue: queue, Logger: zap.NewNop()}
	ctx := context.Background()

	require.NoError(t, svc.NotifyUser(ctx, "u1", "Your booking has been confirmed!"))
	require.NoError(t, svc.NotifyHotelOwner(ctx, "o1", "New Booking Alert!"))
	require.Len(t, queue.tasks, 2)
	assert.Equal(t, tasks.TypeSendPush, queue.tasks[0].Type())

	n, hit, err := svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.False(t, hit)

	n, hit, err = svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.True(t, hit)
	assert.Equal(t, 1, repo.counts)

	marked, err := svc.MarkRead(ctx, "u1", []string{repo.items[0].ID, repo.items[1].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked)

	n, hit, err = svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.False(t, hit)
}

func TestMarkReadWithoutIDs(t *testing.T) {
	svc := &DefaultNotificationService{Repo: &memRepo{}, Logger: zap.NewNop()}
	n, err := svc.MarkRead(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSendPushSkipsMissingToken(t *testing.T) {
	pusher := &recordingPusher{}
	svc := &DefaultNotificationService{
		Users:  &stubUserRepo{users: map[string]models.User{"u1": {ID: "u1", FCMToken: "device-1"}, "u2": {ID: "u2"}}},
		Pusher: pusher,
		Logger: zap.NewNop(),
	}
	ctx := context.Background()

	require.NoError(t, svc.SendPush(ctx, models.PushPayload{RecipientID: "u1", Title: "FlyNext", Body: "hi"}))
	require.NoError(t, svc.SendPush(ctx, models.PushPayload{RecipientID: "u2", Title: "FlyNext", Body: "hi"}))
	assert.Equal(t, []string{"device-1"}, pusher.tokens)
}
