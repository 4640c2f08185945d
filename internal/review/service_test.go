package review

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/aryansawant3579-cell/review-app/internal/access"
	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

// fakeStore is an in-memory Store; InTx runs the callback against the same
// instance, so assertions observe exactly what a transaction would have seen.
type fakeStore struct {
	reviews       map[string]domain.Review
	rollupKeys    []string
	upsertErr     error
	nextID        int
	now           time.Time
	txDepth       int
	listBranchIDs []string
}

func newFakeStore(now time.Time) *fakeStore {
	return &fakeStore{reviews: map[string]domain.Review{}, now: now}
}

func (f *fakeStore) InTx(ctx context.Context, fn func(Store) error) error {
	f.txDepth++
	defer func() { f.txDepth-- }()
	return fn(f)
}

func (f *fakeStore) InsertReview(ctx context.Context, params InsertParams) (domain.Review, error) {
	if f.txDepth == 0 {
		return domain.Review{}, errors.New("insert outside transaction")
	}
	f.nextID++
	rev := domain.Review{
		ID:        string(rune('A' + f.nextID - 1)),
		BranchID:  params.BranchID,
		Rating:    params.Rating,
		Content:   params.Content,
		Source:    params.Source,
		Sentiment: params.Sentiment,
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}
	f.reviews[rev.ID] = rev
	return rev, nil
}

func (f *fakeStore) GetReview(ctx context.Context, id string) (domain.Review, error) {
	rev, ok := f.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	return rev, nil
}

func (f *fakeStore) SetReviewResponse(ctx context.Context, id, responseText, responderID string) (domain.Review, error) {
	rev, ok := f.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	rev.IsResponded = true
	rev.ResponseText = &responseText
	rev.RespondedBy = &responderID
	at := f.now
	rev.RespondedAt = &at
	rev.UpdatedAt = f.now
	f.reviews[id] = rev
	return rev, nil
}

func (f *fakeStore) MarkReviewEscalated(ctx context.Context, id string) (domain.Review, error) {
	rev, ok := f.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	rev.IsEscalated = true
	f.reviews[id] = rev
	return rev, nil
}

func (f *fakeStore) ListReviews(ctx context.Context, branchIDs []string, filters ListFilters) ([]domain.Review, int64, error) {
	f.listBranchIDs = branchIDs
	return []domain.Review{}, 0, nil
}

func (f *fakeStore) ReviewsForBranchAndDay(ctx context.Context, branchID string, day time.Time) ([]domain.Review, error) {
	var out []domain.Review
	for _, rev := range f.reviews {
		if rev.BranchID == branchID && rev.CreatedDay().Equal(day) {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (f *fakeStore) UpsertDailyRollup(ctx context.Context, rollup domain.DailyRollup) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.rollupKeys = append(f.rollupKeys, rollup.BranchID+"/"+rollup.Day.Format("2006-01-02"))
	return nil
}

type allDirectory struct{ ids []string }

func (d allDirectory) AllBranchIDs(ctx context.Context) ([]string, error) { return d.ids, nil }
func (d allDirectory) BranchIDsManagedBy(ctx context.Context, actorID string) ([]string, error) {
	return nil, nil
}

func newTestService(store *fakeStore, dirIDs []string) *Service {
	svc := NewService(store, access.NewResolver(allDirectory{ids: dirIDs}), log.New(io.Discard, "", 0))
	svc.now = func() time.Time { return store.now }
	return svc
}

func TestCreateClassifiesAndRecomputes(t *testing.T) {
	now := time.Date(2026, time.April, 2, 9, 30, 0, 0, time.UTC)
	store := newFakeStore(now)
	svc := newTestService(store, []string{"b1"})

	rev, err := svc.Create(context.Background(), CreateParams{BranchID: "b1", Rating: 5, Content: "Great food"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rev.Sentiment != domain.SentimentPositive {
		t.Fatalf("Sentiment = %s, want positive", rev.Sentiment)
	}
	if rev.Source != "internal" {
		t.Fatalf("Source = %s, want internal default", rev.Source)
	}
	if len(store.rollupKeys) != 1 || store.rollupKeys[0] != "b1/2026-04-02" {
		t.Fatalf("rollup keys = %v, want [b1/2026-04-02]", store.rollupKeys)
	}
}

func TestCreateInvalidInput(t *testing.T) {
	store := newFakeStore(time.Now().UTC())
	svc := newTestService(store, nil)

	cases := []CreateParams{
		{BranchID: "", Rating: 5, Content: "fine"},
		{BranchID: "b1", Rating: 0, Content: "fine"},
		{BranchID: "b1", Rating: 6, Content: "fine"},
		{BranchID: "b1", Rating: 3, Content: "  "},
	}
	for i, params := range cases {
		if _, err := svc.Create(context.Background(), params); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("case %d: error = %v, want ErrInvalidInput", i, err)
		}
	}
	if len(store.reviews) != 0 {
		t.Fatalf("invalid drafts must not be persisted")
	}
}

func TestRespondRecomputesOnlyToday(t *testing.T) {
	now := time.Date(2026, time.April, 2, 9, 30, 0, 0, time.UTC)
	store := newFakeStore(now)
	svc := newTestService(store, []string{"b1"})

	todayRev, err := svc.Create(context.Background(), CreateParams{BranchID: "b1", Rating: 5, Content: "Great"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	store.rollupKeys = nil

	updated, err := svc.Respond(context.Background(), todayRev.ID, "Thanks!", "u1")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !updated.IsResponded || updated.ResponseText == nil || *updated.ResponseText != "Thanks!" {
		t.Fatalf("response fields not set: %+v", updated)
	}
	if len(store.rollupKeys) != 1 {
		t.Fatalf("respond on today's review must recompute its rollup")
	}

	// A review created yesterday does not refresh any rollup on respond.
	oldRev := domain.Review{ID: "old", BranchID: "b1", Rating: 2, Content: "meh",
		Sentiment: domain.SentimentNegative, CreatedAt: now.AddDate(0, 0, -1)}
	store.reviews[oldRev.ID] = oldRev
	store.rollupKeys = nil

	if _, err := svc.Respond(context.Background(), "old", "Sorry!", "u1"); err != nil {
		t.Fatalf("Respond old: %v", err)
	}
	if len(store.rollupKeys) != 0 {
		t.Fatalf("respond on an old review must not recompute, got %v", store.rollupKeys)
	}
}

func TestRespondOverwritesPriorResponse(t *testing.T) {
	now := time.Date(2026, time.April, 2, 9, 30, 0, 0, time.UTC)
	store := newFakeStore(now)
	svc := newTestService(store, []string{"b1"})

	rev, _ := svc.Create(context.Background(), CreateParams{BranchID: "b1", Rating: 1, Content: "Awful"})
	if _, err := svc.Respond(context.Background(), rev.ID, "First reply", "u1"); err != nil {
		t.Fatalf("first respond: %v", err)
	}
	updated, err := svc.Respond(context.Background(), rev.ID, "Second reply", "u2")
	if err != nil {
		t.Fatalf("second respond must win, got %v", err)
	}
	if *updated.ResponseText != "Second reply" || *updated.RespondedBy != "u2" {
		t.Fatalf("last write should win: %+v", updated)
	}
}

func TestRespondNotFound(t *testing.T) {
	store := newFakeStore(time.Now().UTC())
	svc := newTestService(store, nil)

	if _, err := svc.Respond(context.Background(), "missing", "hi", "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestRollupFailureSurfacesFromCreate(t *testing.T) {
	store := newFakeStore(time.Now().UTC())
	store.upsertErr = errors.New("disk full")
	svc := newTestService(store, []string{"b1"})

	if _, err := svc.Create(context.Background(), CreateParams{BranchID: "b1", Rating: 5, Content: "Great"}); err == nil {
		t.Fatalf("rollup failure inside the transaction must surface")
	}
}

func TestListValidatesPagination(t *testing.T) {
	store := newFakeStore(time.Now().UTC())
	svc := newTestService(store, []string{"b1"})
	admin := domain.Actor{ID: "a1", Role: domain.RoleAdmin}

	for _, filters := range []ListFilters{{Page: 0, PageSize: 10}, {Page: 1, PageSize: 0}, {Page: -1, PageSize: -1}} {
		if _, _, err := svc.List(context.Background(), admin, filters); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("filters %+v: error = %v, want ErrInvalidInput", filters, err)
		}
	}
}

func TestListEmptyScope(t *testing.T) {
	store := newFakeStore(time.Now().UTC())
	svc := newTestService(store, []string{"b1"})

	items, total, err := svc.List(context.Background(), domain.Actor{ID: "m1", Role: domain.RoleManager}, ListFilters{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 || total != 0 {
		t.Fatalf("empty scope: items=%d total=%d, want zeros", len(items), total)
	}
	if store.listBranchIDs != nil {
		t.Fatalf("store must not be queried for an empty scope")
	}
}
