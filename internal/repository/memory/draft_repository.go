package memory

import (
	"time"

	"mcq-writer-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type DraftRepository struct {
	cache *cache.Cache
}

func NewDraftRepository() *DraftRepository {
	// Drafts expire after an hour of inactivity; expired items are
	// purged every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &DraftRepository{
		cache: c,
	}
}

func (r *DraftRepository) Save(draft *store.Draft) {
	r.cache.Set(draft.ID, draft, cache.DefaultExpiration)
}

func (r *DraftRepository) Get(mcqID string) (*store.Draft, bool) {
	if x, found := r.cache.Get(mcqID); found {
		return x.(*store.Draft), true
	}
	return nil, false
}

func (r *DraftRepository) Delete(mcqID string) {
	r.cache.Delete(mcqID)
}
