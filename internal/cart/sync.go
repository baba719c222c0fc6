package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/gruppopolinex/polinex-backend/pkg/logger"
	pkgredis "github.com/gruppopolinex/polinex-backend/pkg/redis"
)

// SyncChannel propagates "the cart changed" to every observer. Two channels
// feed one refresh path: a synchronous in-process fan-out for mutations made
// by this runtime, and a redis pub/sub subscription for mutations made by
// other runtimes sharing the same snapshot key. Messages published by this
// runtime are ignored on the pub/sub side so observers fire exactly once per
// local mutation. One pub/sub listener is shared by all subscribers of a
// token: it starts with the first subscription and stops with the last.
type SyncChannel struct {
	client *pkgredis.Client
	logg   *logger.Logger
	origin string

	mu        sync.Mutex
	subs      map[string]map[int]func()
	nextSub   int
	listeners map[string]context.CancelFunc
}

// NewSyncChannel builds a sync channel bridged over the given redis client.
func NewSyncChannel(client *pkgredis.Client, logg *logger.Logger) (*SyncChannel, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &SyncChannel{
		client:    client,
		logg:      logg,
		origin:    uuid.NewString(),
		subs:      map[string]map[int]func(){},
		listeners: map[string]context.CancelFunc{},
	}, nil
}

// Notify fans the trigger out to local subscribers, then publishes it for
// other runtimes. The trigger carries no payload; observers re-read the
// snapshot.
func (c *SyncChannel) Notify(ctx context.Context, token string) {
	c.fanOut(token)

	if err := c.client.Publish(ctx, c.client.CartChannel(token), c.origin); err != nil && c.logg != nil {
		ctx = c.logg.WithCartToken(ctx, token)
		c.logg.Warn(ctx, "cart change publish failed")
	}
}

// Subscribe registers fn to run on every change trigger for the token,
// whichever runtime caused it. The returned func removes the subscription;
// callers release it on teardown. fn must not block.
func (c *SyncChannel) Subscribe(token string, fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.subs[token] == nil {
		c.subs[token] = map[int]func(){}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[token][id] = fn

	if _, running := c.listeners[token]; !running {
		listenCtx, cancel := context.WithCancel(context.Background())
		c.listeners[token] = cancel
		go c.listen(listenCtx, token)
	}

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs[token], id)
		if len(c.subs[token]) == 0 {
			delete(c.subs, token)
			if cancel, ok := c.listeners[token]; ok {
				cancel()
				delete(c.listeners, token)
			}
		}
	}
}

// listen consumes change triggers published by other runtimes for the token
// and replays them to local subscribers. It runs until its context is
// canceled by the last unsubscribe.
func (c *SyncChannel) listen(ctx context.Context, token string) {
	pubsub := c.client.Subscribe(ctx, c.client.CartChannel(token))
	defer func() {
		_ = pubsub.Close()
	}()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload == c.origin {
				continue
			}
			c.fanOut(token)
		}
	}
}

func (c *SyncChannel) fanOut(token string) {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.subs[token]))
	for _, fn := range c.subs[token] {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
