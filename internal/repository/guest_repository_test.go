package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-checkin/internal/database"
)

// newTestDB opens an in-memory store with the production schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Init(context.Background(), db))
	return db
}

func TestGuestCreateNormalizesIdentity(t *testing.T) {
	repo := NewGuestRepo(newTestDB(t))
	ctx := context.Background()

	g, err := repo.Create(ctx, "  Somchai Jane ", "A1", "Table A1")
	require.NoError(t, err)
	assert.Equal(t, "somchai jane", g.Name)
	assert.Equal(t, "Somchai Jane", g.DisplayName)
	assert.Equal(t, "A1", g.Seat)
}

func TestGuestCreateRejectsEmptyName(t *testing.T) {
	repo := NewGuestRepo(newTestDB(t))
	_, err := repo.Create(context.Background(), "   ", "A1", "Table A1")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestGuestCreateDuplicateName(t *testing.T) {
	repo := NewGuestRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "Anna", "A1", "Table A1")
	require.NoError(t, err)
	// Same identity key after normalization, different seat.
	_, err = repo.Create(ctx, "  ANNA ", "B2", "Table B2")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestGuestCreateDuplicateSeat(t *testing.T) {
	repo := NewGuestRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "New Person", "B2", "Table B2")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Other", "B2", "Table B2")
	assert.ErrorIs(t, err, ErrDuplicateSeat)

	// The failed create must not have mutated state.
	guests, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "new person", guests[0].Name)
}

func TestGuestUpdateRenameInPlace(t *testing.T) {
	repo := NewGuestRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "Anna", "A1", "Table A1")
	require.NoError(t, err)

	g, err := repo.Update(ctx, "anna", "Anna Smith", "C3", "Head table")
	require.NoError(t, err)
	assert.Equal(t, "anna smith", g.Name)
	assert.Equal(t, "C3", g.Seat)

	// Old key is gone, new key resolves.
	_, err = repo.FindBySubstring(ctx, "anna smith")
	assert.NoError(t, err)
	guests, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "Head table", guests[0].SeatEN)
}

func TestGuestUpdateNotFound(t *testing.T) {
	repo := NewGuestRepo(newTestDB(t))
	_, err := repo.Update(context.Background(), "ghost", "Ghost", "A1", "")
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestGuestUpdateSeatHeldByOther(t *testing.T) {
	repo := NewGuestRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "Anna", "A1", "Table A1")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Bert", "B2", "Table B2")
	require.NoError(t, err)

	_, err = repo.Update(ctx, "bert", "Bert", "A1", "Table A1")
	assert.ErrorIs(t, err, ErrDuplicateSeat)
}

func TestGuestUpdateKeepingOwnSeat(t *testing.T) {
	repo := NewGuestRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "Anna", "A1", "Table A1")
	require.NoError(t, err)

	// Re-assigning a guest's own seat is not a conflict.
	_, err = repo.Update(ctx, "anna", "Anna B", "A1", "Table A1")
	assert.NoError(t, err)
}

func TestGuestUpdateNameHeldByOther(t *testing.T) {
	repo := NewGuestRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "Anna", "A1", "Table A1")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Bert", "B2", "Table B2")
	require.NoError(t, err)

	_, err = repo.Update(ctx, "bert", "Anna", "B2", "Table B2")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestGuestDeleteIdempotent(t *testing.T) {
	repo := NewGuestRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "Anna", "A1", "Table A1")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "anna"))
	require.NoError(t, repo.Delete(ctx, "anna")) // second delete is a no-op

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFindBySubstring(t *testing.T) {
	repo := NewGuestRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "Somchai Jane", "A1", "Table A1")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Jane Doe", "B2", "Table B2")
	require.NoError(t, err)

	g, err := repo.FindBySubstring(ctx, "  Somchai ")
	require.NoError(t, err)
	assert.Equal(t, "A1", g.Seat)

	// Both identity keys contain "jane"; the ascending-key tie-break
	// picks "jane doe" over "somchai jane".
	g, err = repo.FindBySubstring(ctx, "Jane")
	require.NoError(t, err)
	assert.Equal(t, "jane doe", g.Name)

	_, err = repo.FindBySubstring(ctx, "nobody")
	assert.ErrorIs(t, err, ErrGuestNotFound)

	// Empty input never matches, even though every string contains "".
	_, err = repo.FindBySubstring(ctx, "   ")
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestListAllOrderedBySeatThenName(t *testing.T) {
	repo := NewGuestRepo(newTestDB(t))
	ctx := context.Background()

	for _, g := range []struct{ name, seat string }{
		{"Zed", "A2"},
		{"Amy", "B1"},
		{"Bob", "A1"},
	} {
		_, err := repo.Create(ctx, g.name, g.seat, "Table "+g.seat)
		require.NoError(t, err)
	}

	guests, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, guests, 3)
	assert.Equal(t, "A1", guests[0].Seat)
	assert.Equal(t, "A2", guests[1].Seat)
	assert.Equal(t, "B1", guests[2].Seat)
}
