package activation

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	courseModel "github.com/LeDuoc95/BE-FEDUU/internal/model/course"
	"github.com/LeDuoc95/BE-FEDUU/internal/testutils"
	"github.com/LeDuoc95/BE-FEDUU/pkg/authsdk"
	"github.com/LeDuoc95/BE-FEDUU/pkg/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupLedger(t *testing.T) (*gorm.DB, *Ledger) {
	t.Helper()
	db := testutils.SetupTestDB(t)
	return db, NewLedger(db, DefaultBatchSize)
}

// newCourseWithKeys creates a course and its initial pool in one transaction
func newCourseWithKeys(t *testing.T, db *gorm.DB, ledger *Ledger, title string) (*courseModel.Course, []courseModel.ActivationKey) {
	t.Helper()
	owner := testutils.CreateTestUser(db, testutils.WithRole("lecturer"))

	var c *courseModel.Course
	var keys []courseModel.ActivationKey
	err := db.Transaction(func(tx *gorm.DB) error {
		c = testutils.CreateTestCourse(tx, owner.ID, testutils.WithTitle(title))
		var err error
		keys, err = ledger.MintBatch(tx, c.ID, ledger.BatchSize())
		return err
	})
	require.NoError(t, err)
	return c, keys
}

func poolTokens(t *testing.T, ledger *Ledger, courseID uint) map[string]bool {
	t.Helper()
	keys, err := ledger.List(context.Background(), courseID)
	require.NoError(t, err)
	tokens := make(map[string]bool, len(keys))
	for _, k := range keys {
		tokens[k.KeyActive] = true
	}
	return tokens
}

func TestMintBatch(t *testing.T) {
	db, ledger := setupLedger(t)
	c, keys := newCourseWithKeys(t, db, ledger, "Intro to X")

	require.Len(t, keys, DefaultBatchSize)

	seen := make(map[string]bool)
	for _, k := range keys {
		assert.NotZero(t, k.ID)
		assert.Equal(t, c.ID, k.CourseID)
		assert.Len(t, k.KeyActive, 36)
		assert.NotEqual(t, strconv.FormatUint(uint64(k.ID), 10), k.KeyActive)
		assert.False(t, seen[k.KeyActive], "duplicate token %s", k.KeyActive)
		seen[k.KeyActive] = true
	}

	count, err := ledger.Count(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultBatchSize), count)
}

func TestMintBatch_InvalidCount(t *testing.T) {
	db, ledger := setupLedger(t)

	for _, n := range []int{0, -3} {
		_, err := ledger.MintBatch(db, 1, n)
		assert.True(t, response.HasCode(err, response.InvalidParameter), "count %d", n)
	}

	_, err := ledger.MintBatch(db, 0, 5)
	assert.True(t, response.HasCode(err, response.InvalidParameter))
}

func TestMintBatch_RollsBackWithCourse(t *testing.T) {
	db, ledger := setupLedger(t)
	owner := testutils.CreateTestUser(db, testutils.WithRole("lecturer"))
	boom := errors.New("boom")

	err := db.Transaction(func(tx *gorm.DB) error {
		c := testutils.CreateTestCourse(tx, owner.ID, testutils.WithTitle("Doomed"))
		if _, err := ledger.MintBatch(tx, c.ID, 10); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var courses, keys int64
	db.Model(&courseModel.Course{}).Count(&courses)
	db.Model(&courseModel.ActivationKey{}).Count(&keys)
	assert.Zero(t, courses)
	assert.Zero(t, keys)
}

func TestRedeem_Scenario(t *testing.T) {
	db, ledger := setupLedger(t)
	ctx := context.Background()
	c, keys := newCourseWithKeys(t, db, ledger, "Intro to X")
	before := poolTokens(t, ledger, c.ID)

	third := keys[2].KeyActive
	unlocked, err := ledger.Redeem(ctx, third)
	require.NoError(t, err)
	assert.Equal(t, c.ID, unlocked.ID)
	assert.Equal(t, "Intro to X", unlocked.Title)

	after := poolTokens(t, ledger, c.ID)
	assert.Len(t, after, 10)
	assert.False(t, after[third])

	var fresh []string
	for token := range after {
		if !before[token] {
			fresh = append(fresh, token)
		}
	}
	require.Len(t, fresh, 1)

	_, err = ledger.Redeem(ctx, third)
	assert.True(t, response.HasCode(err, response.NotFound))

	unlocked, err = ledger.Redeem(ctx, fresh[0])
	require.NoError(t, err)
	assert.Equal(t, c.ID, unlocked.ID)
}

func TestRedeem_PoolSizeInvariant(t *testing.T) {
	db, ledger := setupLedger(t)
	ctx := context.Background()
	c, _ := newCourseWithKeys(t, db, ledger, "Invariant")
	other, _ := newCourseWithKeys(t, db, ledger, "Bystander")

	for i := 0; i < 25; i++ {
		keys, err := ledger.List(ctx, c.ID)
		require.NoError(t, err)

		_, err = ledger.Redeem(ctx, keys[i%len(keys)].KeyActive)
		require.NoError(t, err)

		count, err := ledger.Count(ctx, c.ID)
		require.NoError(t, err)
		require.Equal(t, int64(DefaultBatchSize), count, "after redemption %d", i+1)
	}

	count, err := ledger.Count(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultBatchSize), count)
}

func TestRedeem_Errors(t *testing.T) {
	_, ledger := setupLedger(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
		code  response.ResponseCode
	}{
		{"blank", "   ", response.RequiredFieldMissing},
		{"unknown", "1a2b3c4d-0000-4000-8000-000000000000", response.NotFound},
		{"row id is not a token", "1", response.NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ledger.Redeem(ctx, tt.token)
			assert.Nil(t, c)
			assert.True(t, response.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestRedeem_SoftDeletedCourse(t *testing.T) {
	db, ledger := setupLedger(t)
	ctx := context.Background()
	c, keys := newCourseWithKeys(t, db, ledger, "Withdrawn")
	require.NoError(t, db.Model(c).Update("deleted", true).Error)

	unlocked, err := ledger.Redeem(ctx, keys[0].KeyActive)
	assert.Nil(t, unlocked)
	assert.True(t, response.HasCode(err, response.NotFound), "got %v", err)
	assert.Equal(t, "course is no longer available", err.Error())

	// the token and pool are untouched
	pool, err := ledger.List(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, pool, len(keys))
	tokens := make([]string, 0, len(pool))
	for _, k := range pool {
		tokens = append(tokens, k.KeyActive)
	}
	assert.Contains(t, tokens, keys[0].KeyActive)
}

func TestRedeem_ConcurrentSameToken(t *testing.T) {
	db, ledger := setupLedger(t)
	c, keys := newCourseWithKeys(t, db, ledger, "Race")
	token := keys[0].KeyActive

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		notFound  int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Redeem(context.Background(), token)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case response.HasCode(err, response.NotFound):
				notFound++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, notFound)

	count, err := ledger.Count(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultBatchSize), count)
}

func TestPool(t *testing.T) {
	db, ledger := setupLedger(t)
	ctx := context.Background()
	c, _ := newCourseWithKeys(t, db, ledger, "Owned")

	owner := &authsdk.UserContext{UserID: c.UserID, Role: "lecturer"}
	stranger := &authsdk.UserContext{UserID: c.UserID + 100, Role: "lecturer"}
	admin := &authsdk.UserContext{UserID: c.UserID + 200, Role: "admin"}

	pool, err := ledger.Pool(ctx, owner, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, pool.Count)

	_, err = ledger.Pool(ctx, admin, c.ID)
	assert.NoError(t, err)

	_, err = ledger.Pool(ctx, stranger, c.ID)
	assert.True(t, response.HasCode(err, response.Forbidden))

	_, err = ledger.Pool(ctx, owner, 9999)
	assert.True(t, response.HasCode(err, response.NotFound))
}
