package webhook

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/subwatch/subwatch/internal/types"
)

// DedupStore is the client-local deduplication cache for the chat channel.
// It maps a composite key (subscription, day count, renewal date) to the
// calendar day the message was last sent, so a given milestone fires at most
// once per day. Entries for days other than today are pruned on every write,
// which bounds growth; only "sent today" status is ever meaningful.
//
// This store is deliberately weaker than the server-side reminder records:
// it is process-local, needs no durability across restarts, and exists only
// to stop redundant outbound webhook calls.
type DedupStore struct {
	cache *gocache.Cache
}

// NewDedupStore creates an empty dedup store. The 48h expiry is a backstop;
// the prune on MarkSent is what actually bounds the cache.
func NewDedupStore() *DedupStore {
	return &DedupStore{
		cache: gocache.New(48*time.Hour, time.Hour),
	}
}

// Key builds the composite dedup key for one reminder milestone.
func (s *DedupStore) Key(subscriptionID string, daysUntil int, renewalDate time.Time) string {
	return fmt.Sprintf("%s_%d_%s", subscriptionID, daysUntil, types.FormatCivilDate(renewalDate))
}

// AlreadySentToday reports whether the key was marked sent on the given
// civil day. A stored entry for a different day counts as not sent.
func (s *DedupStore) AlreadySentToday(key string, today time.Time) bool {
	value, found := s.cache.Get(key)
	if !found {
		return false
	}
	day, ok := value.(string)
	return ok && day == types.FormatCivilDate(today)
}

// MarkSent records the key as sent today and prunes every entry whose stored
// day is not today.
func (s *DedupStore) MarkSent(key string, today time.Time) {
	todayStr := types.FormatCivilDate(today)
	for existingKey, item := range s.cache.Items() {
		if day, ok := item.Object.(string); !ok || day != todayStr {
			s.cache.Delete(existingKey)
		}
	}
	s.cache.Set(key, todayStr, gocache.DefaultExpiration)
}

// Len returns the number of live entries, used by tests to verify pruning.
func (s *DedupStore) Len() int {
	return s.cache.ItemCount()
}
