package schedule

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore records how many times the service reached the store.
type countingStore struct {
	*MemoryStore
	inserts atomic.Int64
	cancels atomic.Int64
}

func (c *countingStore) InsertIfNoConflict(ctx context.Context, res *Reservation) ([]Reservation, error) {
	c.inserts.Add(1)
	return c.MemoryStore.InsertIfNoConflict(ctx, res)
}

func (c *countingStore) MarkCancelled(ctx context.Context, id string) (*Reservation, bool, error) {
	c.cancels.Add(1)
	return c.MemoryStore.MarkCancelled(ctx, id)
}

// recordingNotifier captures post-commit callbacks.
type recordingNotifier struct {
	mu        sync.Mutex
	created   []Reservation
	cancelled []Reservation
}

func (n *recordingNotifier) ReservationCreated(res Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, res)
}

func (n *recordingNotifier) ReservationCancelled(res Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, res)
}

func newTestService() (*Service, *countingStore, *recordingNotifier) {
	store := &countingStore{MemoryStore: NewMemoryStore()}
	notifier := &recordingNotifier{}
	return NewService(store, notifier), store, notifier
}

func propose(venue string, start, end time.Time) ProposeRequest {
	return ProposeRequest{
		Venue:   venue,
		Start:   start,
		End:     end,
		OwnerID: "principal-1",
	}
}

func TestProposeAdmitsAndNotifies(t *testing.T) {
	svc, _, notifier := newTestService()
	ctx := context.Background()

	res, err := svc.Propose(ctx, ProposeRequest{
		Venue:    "Main Hall",
		Start:    at(9, 0),
		End:      at(11, 0),
		OwnerID:  "principal-1",
		Metadata: map[string]string{"title": "Seminar"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.ID)
	assert.Equal(t, StatusScheduled, res.Status)
	assert.Equal(t, "Seminar", res.Title())

	require.Len(t, notifier.created, 1)
	assert.Equal(t, res.ID, notifier.created[0].ID)
}

func TestProposeOverlapRejectedWithFullDetail(t *testing.T) {
	svc, _, notifier := newTestService()
	ctx := context.Background()

	existing, err := svc.Propose(ctx, ProposeRequest{
		Venue:    "Main Hall",
		Start:    at(9, 0),
		End:      at(11, 0),
		OwnerID:  "principal-1",
		Metadata: map[string]string{"title": "Seminar"},
	})
	require.NoError(t, err)

	_, err = svc.Propose(ctx, propose("Main Hall", at(10, 0), at(12, 0)))
	require.Error(t, err)

	ce, ok := AsConflict(err)
	require.True(t, ok, "expected a ConflictError, got %v", err)
	require.Len(t, ce.Conflicts, 1)
	assert.Equal(t, existing.ID, ce.Conflicts[0].ID)
	assert.Equal(t, "Seminar", ce.Conflicts[0].Title())
	assert.True(t, ce.Conflicts[0].Interval.Start.Equal(at(9, 0)))
	assert.True(t, ce.Conflicts[0].Interval.End.Equal(at(11, 0)))

	// rejection must not notify
	assert.Len(t, notifier.created, 1)
}

func TestProposeReturnsAllConflictsSorted(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	second, err := svc.Propose(ctx, propose("Main Hall", at(11, 0), at(12, 0)))
	require.NoError(t, err)
	first, err := svc.Propose(ctx, propose("Main Hall", at(9, 0), at(10, 0)))
	require.NoError(t, err)

	_, err = svc.Propose(ctx, propose("Main Hall", at(9, 30), at(11, 30)))
	ce, ok := AsConflict(err)
	require.True(t, ok)
	require.Len(t, ce.Conflicts, 2)
	assert.Equal(t, first.ID, ce.Conflicts[0].ID)
	assert.Equal(t, second.ID, ce.Conflicts[1].ID)
}

func TestAbutmentIsNotConflict(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Propose(ctx, propose("A", at(10, 0), at(11, 0)))
	require.NoError(t, err)
	_, err = svc.Propose(ctx, propose("A", at(11, 0), at(12, 0)))
	require.NoError(t, err)
}

func TestDifferentVenuesNeverConflict(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Propose(ctx, propose("A", at(9, 0), at(11, 0)))
	require.NoError(t, err)
	_, err = svc.Propose(ctx, propose("B", at(9, 0), at(11, 0)))
	require.NoError(t, err)
}

func TestCancelFreesTheSlot(t *testing.T) {
	svc, _, notifier := newTestService()
	ctx := context.Background()

	res, err := svc.Propose(ctx, propose("A", at(9, 0), at(11, 0)))
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, res.ID))
	require.Len(t, notifier.cancelled, 1)
	assert.Equal(t, StatusCancelled, notifier.cancelled[0].Status)

	_, err = svc.Propose(ctx, propose("A", at(9, 0), at(11, 0)))
	require.NoError(t, err, "identical interval must be admitted after cancel")
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, _, notifier := newTestService()
	ctx := context.Background()

	res, err := svc.Propose(ctx, propose("A", at(9, 0), at(11, 0)))
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, res.ID))
	require.NoError(t, svc.Cancel(ctx, res.ID), "second cancel is a no-op success")
	assert.Len(t, notifier.cancelled, 1, "no-op cancel must not notify again")
}

func TestCancelUnknownIDIsNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	err := svc.Cancel(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidProposalsNeverReachStore(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	// zero duration
	_, err := svc.Propose(ctx, propose("A", at(9, 0), at(9, 0)))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// inverted
	_, err = svc.Propose(ctx, propose("A", at(11, 0), at(9, 0)))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// missing venue
	_, err = svc.Propose(ctx, propose("", at(9, 0), at(11, 0)))
	assert.ErrorIs(t, err, ErrInvalidRequest)

	// missing owner
	req := propose("A", at(9, 0), at(11, 0))
	req.OwnerID = ""
	_, err = svc.Propose(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	assert.Zero(t, store.inserts.Load(), "validation failures must not touch the store")
}

func TestIdempotencyKeyDeduplicates(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := propose("A", at(9, 0), at(11, 0))
	req.IdempotencyKey = "client-token-1"

	first, err := svc.Propose(ctx, req)
	require.NoError(t, err)

	retried, err := svc.Propose(ctx, req)
	require.NoError(t, err, "retry with the same key must not double-book")
	assert.Equal(t, first.ID, retried.ID)

	listed, err := svc.ListForVenue(ctx, "A", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestConcurrentRaceHasExactlyOneWinner(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)
	winners := make([]*Reservation, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			winners[i], results[i] = svc.Propose(ctx, propose("Main Hall", at(9, 0), at(11, 0)))
		}(i)
	}
	wg.Wait()

	var winnerID string
	successes := 0
	for i, err := range results {
		if err == nil {
			successes++
			winnerID = winners[i].ID
		}
	}
	require.Equal(t, 1, successes, "exactly one proposal must win")

	for _, err := range results {
		if err == nil {
			continue
		}
		ce, ok := AsConflict(err)
		require.True(t, ok, "losers must see a conflict, got %v", err)
		require.Len(t, ce.Conflicts, 1)
		assert.Equal(t, winnerID, ce.Conflicts[0].ID, "loser must see the winner's reservation")
	}
}

func TestListForVenueSortedByStart(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Propose(ctx, propose("A", at(13, 0), at(14, 0)))
	require.NoError(t, err)
	_, err = svc.Propose(ctx, propose("A", at(9, 0), at(10, 0)))
	require.NoError(t, err)
	_, err = svc.Propose(ctx, propose("A", at(11, 0), at(12, 0)))
	require.NoError(t, err)
	_, err = svc.Propose(ctx, propose("B", at(9, 0), at(10, 0)))
	require.NoError(t, err)

	listed, err := svc.ListForVenue(ctx, "A", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i := 1; i < len(listed); i++ {
		assert.True(t, listed[i-1].Interval.Start.Before(listed[i].Interval.Start))
	}

	// bounded range excludes reservations outside it
	bounded, err := svc.ListForVenue(ctx, "A", at(10, 30), at(12, 30))
	require.NoError(t, err)
	require.Len(t, bounded, 1)
	assert.True(t, bounded[0].Interval.Start.Equal(at(11, 0)))

	_, err = svc.ListForVenue(ctx, "", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

// TestNonOverlapInvariantRandomized replays a random propose/cancel sequence
// and checks after each step that no two active reservations on the same
// venue overlap.
func TestNonOverlapInvariantRandomized(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	venues := []string{"A", "B", "C"}

	var admitted []*Reservation
	for step := 0; step < 500; step++ {
		if len(admitted) > 0 && rng.Intn(4) == 0 {
			victim := admitted[rng.Intn(len(admitted))]
			require.NoError(t, svc.Cancel(ctx, victim.ID))
		} else {
			venue := venues[rng.Intn(len(venues))]
			startMin := rng.Intn(20) * 30
			durMin := (1 + rng.Intn(6)) * 30
			start := at(8, 0).Add(time.Duration(startMin) * time.Minute)
			end := start.Add(time.Duration(durMin) * time.Minute)

			res, err := svc.Propose(ctx, propose(venue, start, end))
			if err != nil {
				_, ok := AsConflict(err)
				require.True(t, ok, "only conflicts expected, got %v", err)
			} else {
				admitted = append(admitted, res)
			}
		}

		for _, venue := range venues {
			active, err := svc.ListForVenue(ctx, venue, time.Time{}, time.Time{})
			require.NoError(t, err)
			for i := 0; i < len(active); i++ {
				for j := i + 1; j < len(active); j++ {
					assert.False(t, Overlaps(active[i].Interval, active[j].Interval),
						"active reservations %s and %s overlap on venue %s",
						active[i].ID, active[j].ID, venue)
				}
			}
		}
	}
}
