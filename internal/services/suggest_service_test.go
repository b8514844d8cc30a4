package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/convospace/go-search-backend/internal/cache"
	"github.com/convospace/go-search-backend/internal/domain"
)

type fakeSuggestStore struct {
	convs []domain.Conversation
	tags  []domain.Tag

	convErr error
	tagErr  error

	convCalls int
	tagCalls  int
	gotQuery  string
	gotLimit  int
}

func (f *fakeSuggestStore) SuggestConversations(ctx context.Context, db *gorm.DB, userID, query string, limit int) ([]domain.Conversation, error) {
	f.convCalls++
	f.gotQuery = query
	f.gotLimit = limit
	return f.convs, f.convErr
}

func (f *fakeSuggestStore) SuggestTags(ctx context.Context, db *gorm.DB, userID, query string, limit int) ([]domain.Tag, error) {
	f.tagCalls++
	return f.tags, f.tagErr
}

func TestSuggest_ShortQueryReturnsEmptyWithoutStoreCall(t *testing.T) {
	store := &fakeSuggestStore{}
	svc := &SuggestionService{Store: store}

	got, err := svc.Suggest(context.Background(), "u1", "  a  ", 5)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
	if store.convCalls != 0 || store.tagCalls != 0 {
		t.Fatalf("store should not be called for short queries")
	}
}

func TestSuggest_LimitNormalization(t *testing.T) {
	store := &fakeSuggestStore{}
	svc := &SuggestionService{Store: store}

	if _, err := svc.Suggest(context.Background(), "u1", "alpha", 0); err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if store.gotLimit != DefaultSuggestionLimit {
		t.Fatalf("limit = %d, want default %d", store.gotLimit, DefaultSuggestionLimit)
	}

	if _, err := svc.Suggest(context.Background(), "u1", "alpha", 500); err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if store.gotLimit != MaxSuggestionLimit {
		t.Fatalf("limit = %d, want cap %d", store.gotLimit, MaxSuggestionLimit)
	}
}

func TestSuggest_BuildsTypedHighlightedEntries(t *testing.T) {
	store := &fakeSuggestStore{
		convs: []domain.Conversation{
			{ID: "c1", Name: "Project Alpha", IsAI: true, Personality: domain.PersonalityHelpful},
			{ID: "c2", Name: "Alpha Team", IsGroup: true},
			{ID: "c3", Name: "Alpha 1:1"},
		},
		tags: []domain.Tag{{ID: "t1", Name: "alpha-release"}},
	}
	svc := &SuggestionService{Store: store}

	got, err := svc.Suggest(context.Background(), "u1", "alpha", 5)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}

	if got[0].Type != SuggestionConversation || got[0].Text != "Project Alpha" {
		t.Fatalf("first entry: %+v", got[0])
	}
	if got[0].Context != "AI chat · Helpful" {
		t.Fatalf("AI context = %q", got[0].Context)
	}
	if got[0].Highlighted != "Project <mark>Alpha</mark>" {
		t.Fatalf("highlight = %q", got[0].Highlighted)
	}
	if got[1].Context != "Group chat" {
		t.Fatalf("group context = %q", got[1].Context)
	}
	if got[2].Context != "Direct chat" {
		t.Fatalf("direct context = %q", got[2].Context)
	}
	if got[3].Type != SuggestionTag || got[3].Context != "Tag" {
		t.Fatalf("tag entry: %+v", got[3])
	}
	if got[3].Highlighted != "<mark>alpha</mark>-release" {
		t.Fatalf("tag highlight = %q", got[3].Highlighted)
	}
}

func TestSuggest_CombinedListCappedAtTwiceLimit(t *testing.T) {
	store := &fakeSuggestStore{}
	for i := 0; i < 2; i++ {
		store.convs = append(store.convs, domain.Conversation{ID: "c", Name: "alpha conv"})
		store.tags = append(store.tags, domain.Tag{ID: "t", Name: "alpha tag"})
	}
	svc := &SuggestionService{Store: store}

	got, err := svc.Suggest(context.Background(), "u1", "alpha", 1)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (2×limit)", len(got))
	}
	// Conversations keep priority over tags when trimming.
	if got[0].Type != SuggestionConversation {
		t.Fatalf("expected conversation first, got %+v", got[0])
	}
}

func TestSuggest_CacheHitSkipsStore(t *testing.T) {
	now := time.Now()
	c := cache.New(time.Minute, 8).WithClock(func() time.Time { return now })

	store := &fakeSuggestStore{convs: []domain.Conversation{{ID: "c1", Name: "Alpha"}}}
	svc := &SuggestionService{Store: store, Cache: c}

	first, err := svc.Suggest(context.Background(), "u1", "Alpha", 5)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	// Same normalized query, different casing, must hit the cache.
	second, err := svc.Suggest(context.Background(), "u1", "ALPHA", 5)
	if err != nil {
		t.Fatalf("Suggest cached: %v", err)
	}
	if store.convCalls != 1 {
		t.Fatalf("store called %d times, want 1", store.convCalls)
	}
	if len(second) != len(first) || second[0].Text != first[0].Text {
		t.Fatalf("cached result mismatch: %+v vs %+v", second, first)
	}

	// After the TTL passes the store is consulted again.
	now = now.Add(2 * time.Minute)
	if _, err := svc.Suggest(context.Background(), "u1", "alpha", 5); err != nil {
		t.Fatalf("Suggest expired: %v", err)
	}
	if store.convCalls != 2 {
		t.Fatalf("store called %d times after expiry, want 2", store.convCalls)
	}
}

func TestSuggest_DifferentUsersDoNotShareCacheEntries(t *testing.T) {
	c := cache.New(time.Minute, 8)
	store := &fakeSuggestStore{convs: []domain.Conversation{{ID: "c1", Name: "Alpha"}}}
	svc := &SuggestionService{Store: store, Cache: c}

	if _, err := svc.Suggest(context.Background(), "u1", "alpha", 5); err != nil {
		t.Fatalf("Suggest u1: %v", err)
	}
	if _, err := svc.Suggest(context.Background(), "u2", "alpha", 5); err != nil {
		t.Fatalf("Suggest u2: %v", err)
	}
	if store.convCalls != 2 {
		t.Fatalf("store called %d times, want 2 (one per user)", store.convCalls)
	}
}

func TestSuggest_StoreErrorsMapToSuggestFailed(t *testing.T) {
	cause := errors.New("disk on fire")

	svc := &SuggestionService{Store: &fakeSuggestStore{convErr: cause}}
	if _, err := svc.Suggest(context.Background(), "u1", "alpha", 5); !errors.Is(err, ErrSuggestFailed) {
		t.Fatalf("conversation error: got %v, want ErrSuggestFailed", err)
	}

	svc = &SuggestionService{Store: &fakeSuggestStore{tagErr: cause}}
	if _, err := svc.Suggest(context.Background(), "u1", "alpha", 5); !errors.Is(err, ErrSuggestFailed) {
		t.Fatalf("tag error: got %v, want ErrSuggestFailed", err)
	}
}
