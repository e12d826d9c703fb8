package session

import (
	"sync"
	"testing"
	"time"

	"github.com/rocjay1/superstore-analytics/internal/fixtures"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Key(""))
	assert.NotEqual(t, Key(fixtures.Orders), Key(fixtures.Minimal))
}

func TestCache_LoadReturnsSameTableForSameContent(t *testing.T) {
	c := NewCache()

	first, key, _, err := c.Load(fixtures.Orders)
	require.NoError(t, err)
	second, key2, _, err := c.Load(fixtures.Orders)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, key, key2)
	assert.Equal(t, 1, c.Len())

	other, otherKey, _, err := c.Load(fixtures.Minimal)
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.NotEqual(t, key, otherKey)
	assert.Equal(t, 2, c.Len())
}

func TestCache_InvalidFileNotCached(t *testing.T) {
	c := NewCache()
	_, _, _, err := c.Load(fixtures.NoRegion)

	var missing *models.MissingRequiredColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, models.ColRegion, missing.Field)
	assert.Equal(t, 0, c.Len())
}

func TestCache_KeepsSkippedRowMessages(t *testing.T) {
	c := NewCache()
	content := "Sales,Region,Category\n10,East,Furniture\nabc,West,Technology\n"

	_, _, problems, err := c.Load(content)
	require.NoError(t, err)
	require.Len(t, problems, 1)

	_, _, cached, err := c.Load(content)
	require.NoError(t, err)
	assert.Equal(t, problems, cached)
}

func TestStore_CreateAndGet(t *testing.T) {
	st := NewStore(NewCache(), models.DefaultCurrencyMode())
	s := st.Create()

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = st.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.Table(s)
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestStore_AttachResetsSelectionAndEvicts(t *testing.T) {
	st := NewStore(NewCache(), models.DefaultCurrencyMode())
	s := st.Create()

	table, key, _, err := st.Cache.Load(fixtures.Orders)
	require.NoError(t, err)
	st.Attach(s, key, table)

	sel := s.Selection()
	require.NotNil(t, sel.DateRange)
	assert.Equal(t, []string{"East", "West"}, sel.Categorical[models.ColRegion])

	s.SetSelection(sel.With(models.ColRegion, []string{"East"}))
	require.NoError(t, s.SetCurrency(true, decimal.NewFromInt(80)))

	other, otherKey, _, err := st.Cache.Load(fixtures.Minimal)
	require.NoError(t, err)
	st.Attach(s, otherKey, other)

	// New file: default selection, old table gone, currency kept.
	sel = s.Selection()
	assert.Nil(t, sel.DateRange)
	assert.Equal(t, []string{"East", "West"}, sel.Categorical[models.ColRegion])
	_, ok := st.Cache.Get(key)
	assert.False(t, ok)
	assert.True(t, s.CurrencyMode().Local)

	got, err := st.Table(s)
	require.NoError(t, err)
	assert.Same(t, other, got)
}

func TestStore_AttachKeepsSharedTable(t *testing.T) {
	st := NewStore(NewCache(), models.DefaultCurrencyMode())
	a, b := st.Create(), st.Create()

	table, key, _, err := st.Cache.Load(fixtures.Orders)
	require.NoError(t, err)
	st.Attach(a, key, table)
	st.Attach(b, key, table)

	other, otherKey, _, err := st.Cache.Load(fixtures.Minimal)
	require.NoError(t, err)
	st.Attach(a, otherKey, other)

	_, ok := st.Cache.Get(key)
	assert.True(t, ok, "table still used by another session")
}

func TestSession_SetCurrency(t *testing.T) {
	st := NewStore(NewCache(), models.DefaultCurrencyMode())
	s := st.Create()

	assert.False(t, s.CurrencyMode().Local)
	assert.True(t, models.DefaultRate.Equal(s.CurrencyMode().Rate))

	require.NoError(t, s.SetCurrency(true, decimal.RequireFromString("90.04")))
	assert.True(t, s.CurrencyMode().Local)
	assert.Equal(t, "90", s.CurrencyMode().Rate.String())

	err := s.SetCurrency(false, decimal.NewFromInt(151))
	assert.ErrorIs(t, err, models.ErrRateOutOfRange)
	assert.True(t, s.CurrencyMode().Local, "rejected change leaves mode intact")
}

func TestSession_SelectionIsCopied(t *testing.T) {
	s := &Session{}
	sel := models.Selection{}.With(models.ColRegion, []string{"East"})
	s.SetSelection(sel)

	sel.Categorical[models.ColRegion][0] = "West"
	assert.Equal(t, []string{"East"}, s.Selection().Categorical[models.ColRegion])
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := &Session{currency: models.DefaultCurrencyMode()}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.SetCurrency(i%2 == 0, decimal.NewFromInt(int64(60+i)))
			_ = s.CurrencyMode()
			s.SetSelection(models.Selection{})
			_ = s.Selection()
		}(i)
	}
	wg.Wait()
}

func TestStore_AttachAfterConcurrentEviction(t *testing.T) {
	st := NewStore(NewCache(), models.DefaultCurrencyMode())
	a, b := st.Create(), st.Create()

	table, key, _, err := st.Cache.Load(fixtures.Orders)
	require.NoError(t, err)
	st.Attach(b, key, table)

	// a loads the shared table, then b moves on before a attaches.
	shared, sharedKey, _, err := st.Cache.Load(fixtures.Orders)
	require.NoError(t, err)
	other, otherKey, _, err := st.Cache.Load(fixtures.Minimal)
	require.NoError(t, err)
	st.Attach(b, otherKey, other)

	st.Attach(a, sharedKey, shared)

	got, err := st.Table(a)
	require.NoError(t, err)
	assert.Same(t, table, got)
	got, err = st.Table(b)
	require.NoError(t, err)
	assert.Same(t, other, got)
}

func TestStore_ConcurrentAttach(t *testing.T) {
	st := NewStore(NewCache(), models.DefaultCurrencyMode())
	contents := []string{fixtures.Orders, fixtures.Minimal}
	sessions := make([]*Session, 8)
	for i := range sessions {
		sessions[i] = st.Create()
	}

	var wg sync.WaitGroup
	for i, s := range sessions {
		wg.Add(1)
		go func(i int, s *Session) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				table, key, _, err := st.Cache.Load(contents[(i+j)%2])
				if assert.NoError(t, err) {
					st.Attach(s, key, table)
				}
			}
		}(i, s)
	}
	wg.Wait()

	for _, s := range sessions {
		_, err := st.Table(s)
		assert.NoError(t, err, s.ID)
	}
}

func TestStore_Delete(t *testing.T) {
	st := NewStore(NewCache(), models.DefaultCurrencyMode())
	a, b := st.Create(), st.Create()
	table, key, _, err := st.Cache.Load(fixtures.Orders)
	require.NoError(t, err)
	st.Attach(a, key, table)
	st.Attach(b, key, table)

	require.NoError(t, st.Delete(a.ID))
	_, err = st.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, st.Cache.Len(), "table still used by b")

	require.NoError(t, st.Delete(b.ID))
	assert.Equal(t, 0, st.Cache.Len())
	assert.ErrorIs(t, st.Delete(b.ID), ErrNotFound)
}

func TestStore_ExpireIdleSessions(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	st := NewStore(NewCache(), models.DefaultCurrencyMode())
	st.Now = func() time.Time { return now }

	idle, active := st.Create(), st.Create()
	table, key, _, err := st.Cache.Load(fixtures.Orders)
	require.NoError(t, err)
	st.Attach(idle, key, table)

	now = now.Add(90 * time.Minute)
	_, err = st.Get(active.ID)
	require.NoError(t, err)

	now = now.Add(45 * time.Minute)
	fresh := st.Create()

	_, err = st.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(active.ID)
	assert.NoError(t, err)
	_, err = st.Get(fresh.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, st.Cache.Len(), "expired session's table is evicted")
}

func TestStore_NoExpiryWithZeroTTL(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	st := NewStore(NewCache(), models.DefaultCurrencyMode())
	st.IdleTTL = 0
	st.Now = func() time.Time { return now }

	s := st.Create()
	now = now.Add(48 * time.Hour)
	st.Create()

	_, err := st.Get(s.ID)
	assert.NoError(t, err)
}
