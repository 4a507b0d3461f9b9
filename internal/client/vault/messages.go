package vault

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/legacyvault/internal/client/client"
	"github.com/dmitrijs2005/legacyvault/internal/client/models"
	"github.com/dmitrijs2005/legacyvault/internal/logging"
)

type MessageSource interface {
	DirectorLookup
	MessagesByDirector(ctx context.Context, directorID string) ([]models.Message, error)
}

const loadMessagesFailed = "Failed to load your messages."

// VaultFetcher holds the visible vault list.
type VaultFetcher struct {
	base
	data  MessageSource
	media MediaResolver

	mu       sync.Mutex
	loading  bool
	messages []models.Message
}

// NewVaultFetcher builds a fetcher. media may be nil, in which case media
// URLs are shown as stored.
func NewVaultFetcher(sessions SessionSource, data MessageSource, media MediaResolver, alerts Alerter, logger logging.Logger) *VaultFetcher {
	return &VaultFetcher{
		base: base{
			sessions:  sessions,
			directors: data,
			alerts:    alerts,
			logger:    logger.With("component", "vault"),
		},
		data:  data,
		media: media,
	}
}

func (f *VaultFetcher) setLoading(v bool) {
	f.mu.Lock()
	f.loading = v
	f.mu.Unlock()
}

func (f *VaultFetcher) setMessages(m []models.Message) {
	f.mu.Lock()
	f.messages = m
	f.mu.Unlock()
}

func (f *VaultFetcher) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Messages returns a copy of the visible list, most recent first.
func (f *VaultFetcher) Messages() []models.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Message(nil), f.messages...)
}

// Load replaces the visible list with a fresh read. On any failure the list
// is emptied and an alert has already been raised when Load returns.
func (f *VaultFetcher) Load(ctx context.Context) error {
	f.setLoading(true)
	defer f.setLoading(false)

	director, err := f.director(ctx, loadMessagesFailed)
	if err != nil {
		f.setMessages(nil)
		return err
	}

	messages, err := f.data.MessagesByDirector(ctx, director.ID)
	if err != nil {
		f.logger.Error(ctx, "messages fetch failed", "director_id", director.ID, "kind", client.KindOf(err), "error", err)
		f.setMessages(nil)
		f.alerts.Alert(retryAlert(loadMessagesFailed))
		return fmt.Errorf("load messages: %w", err)
	}

	for _, m := range messages {
		if !m.MessageType.Valid() {
			f.logger.Warn(ctx, "unknown message type", "message_id", m.ID, "message_type", m.MessageType)
		}
	}

	models.SortByScheduledDesc(messages)
	f.resolveMedia(ctx, messages)
	f.setMessages(messages)
	return nil
}

// resolveMedia rewrites media URLs in place. A URL that cannot be resolved
// is left as stored.
func (f *VaultFetcher) resolveMedia(ctx context.Context, messages []models.Message) {
	if f.media == nil {
		return
	}
	for i := range messages {
		for j := range messages[i].MessageMedia {
			m := &messages[i].MessageMedia[j]
			resolved, err := f.media.Resolve(ctx, m.MediaURL)
			if err != nil {
				f.logger.Warn(ctx, "media url not resolved", "message_id", messages[i].ID, "error", err)
				continue
			}
			m.MediaURL = resolved
		}
	}
}
