package service

import (
	"context"
	"sync"
	"time"

	"storefront-gateway/internal/common/logger"
	"storefront-gateway/internal/common/metrics"
)

// Poller keeps the inbox snapshots fresh: the chat list on one cadence
// and the currently watched thread on a faster one. Watching a thread
// cancels the previous thread task before the next one starts, so at
// most one thread is polled at a time and no stale task can write a
// snapshot after retargeting.
type Poller struct {
	client Backend
	cache  Snapshots

	chatsEvery  time.Duration
	threadEvery time.Duration

	mu           sync.Mutex
	root         context.Context
	cancelRoot   context.CancelFunc
	cancelThread context.CancelFunc
	activeUser   string
	wg           sync.WaitGroup
}

func NewPoller(client Backend, cacheService Snapshots) *Poller {
	return &Poller{
		client:      client,
		cache:       cacheService,
		chatsEvery:  chatsInterval,
		threadEvery: threadInterval,
	}
}

// WithIntervals overrides the poll cadences, for tests.
func (p *Poller) WithIntervals(chats, thread time.Duration) *Poller {
	p.chatsEvery = chats
	p.threadEvery = thread
	return p
}

// Start launches the chat-list task. All tasks die when ctx does.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.root != nil {
		return
	}
	p.root, p.cancelRoot = context.WithCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.loop(p.root, p.chatsEvery, p.refreshChats)
	}()
}

// Watch retargets the thread task to userID. An empty id just stops the
// current thread task.
func (p *Poller) Watch(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.root == nil {
		return
	}

	if p.cancelThread != nil {
		p.cancelThread()
		p.cancelThread = nil
	}
	p.activeUser = userID
	if userID == "" {
		return
	}

	threadCtx, cancel := context.WithCancel(p.root)
	p.cancelThread = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.loop(threadCtx, p.threadEvery, func(ctx context.Context) error {
			return p.refreshThread(ctx, userID)
		})
	}()
}

// ActiveUser reports which thread is being watched.
func (p *Poller) ActiveUser() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeUser
}

// Stop cancels every task and waits for them to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.cancelRoot != nil {
		p.cancelRoot()
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// loop runs refresh immediately and then on every tick until ctx dies.
// Refresh errors are counted and logged, never fatal.
func (p *Poller) loop(ctx context.Context, every time.Duration, refresh func(context.Context) error) {
	if err := refresh(ctx); err != nil && ctx.Err() == nil {
		metrics.SupportPollErrorsTotal.Inc()
		logger.Warn().Err(err).Msg("Support poll failed")
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			if err := refresh(ctx); err != nil && ctx.Err() == nil {
				metrics.SupportPollErrorsTotal.Inc()
				logger.Warn().Err(err).Msg("Support poll failed")
			}
		}
	}
}

func (p *Poller) refreshChats(ctx context.Context) error {
	chats, err := p.client.GetSupportChats(ctx)
	if err != nil {
		return err
	}
	return p.cache.Set(ctx, chatsCacheKey, chats, snapshotTTL)
}

func (p *Poller) refreshThread(ctx context.Context, userID string) error {
	messages, err := p.client.GetSupportMessages(ctx, userID)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return p.cache.Set(ctx, threadCacheKey+userID, messages, snapshotTTL)
}
