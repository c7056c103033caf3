package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"court-booking/internal/status"
	"court-booking/models"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooking() *models.Booking {
	return &models.Booking{
		ID:        "b1",
		UserID:    "u1",
		CourtID:   "c1",
		Mode:      models.ModeIndoor,
		SlotIndex: 0,
		Status:    models.StatusConfirmed,
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRedisStore_Put_ActiveBooking(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db)

	b := testBooking()
	data, err := json.Marshal(b)
	require.NoError(t, err)

	// Record, index sets and active pointer all land in one MULTI/EXEC.
	mock.ExpectTxPipeline()
	mock.ExpectSet("booking:b1", data, 0).SetVal("OK")
	mock.ExpectSAdd("court:bookings:c1", "b1").SetVal(1)
	mock.ExpectSAdd("user:bookings:u1", "b1").SetVal(1)
	mock.ExpectSet("active:c1:u1", "b1", 0).SetVal("OK")
	mock.ExpectTxPipelineExec()

	require.NoError(t, s.Put(context.Background(), b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Put_CancelledClearsActivePointer(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db)

	b := testBooking()
	b.Status = models.StatusCancelled
	b.SlotIndex = models.NoSlot
	data, err := json.Marshal(b)
	require.NoError(t, err)

	mock.ExpectTxPipeline()
	mock.ExpectSet("booking:b1", data, 0).SetVal("OK")
	mock.ExpectSAdd("court:bookings:c1", "b1").SetVal(0)
	mock.ExpectSAdd("user:bookings:u1", "b1").SetVal(0)
	mock.ExpectDel("active:c1:u1").SetVal(1)
	mock.ExpectTxPipelineExec()

	require.NoError(t, s.Put(context.Background(), b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_PutAll_SwapInOneTransaction(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db)

	b1 := testBooking()
	b1.SlotIndex = 1
	b2 := testBooking()
	b2.ID = "b2"
	b2.UserID = "u2"
	b2.SlotIndex = 0

	d1, err := json.Marshal(b1)
	require.NoError(t, err)
	d2, err := json.Marshal(b2)
	require.NoError(t, err)

	// Both sides of a slot swap queue into a single MULTI/EXEC, so no
	// reader can catch the records half-written.
	mock.ExpectTxPipeline()
	mock.ExpectSet("booking:b1", d1, 0).SetVal("OK")
	mock.ExpectSAdd("court:bookings:c1", "b1").SetVal(0)
	mock.ExpectSAdd("user:bookings:u1", "b1").SetVal(0)
	mock.ExpectSet("active:c1:u1", "b1", 0).SetVal("OK")
	mock.ExpectSet("booking:b2", d2, 0).SetVal("OK")
	mock.ExpectSAdd("court:bookings:c1", "b2").SetVal(0)
	mock.ExpectSAdd("user:bookings:u2", "b2").SetVal(0)
	mock.ExpectSet("active:c1:u2", "b2", 0).SetVal("OK")
	mock.ExpectTxPipelineExec()

	require.NoError(t, s.PutAll(context.Background(), b1, b2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db)

	b := testBooking()
	data, err := json.Marshal(b)
	require.NoError(t, err)

	mock.ExpectGet("booking:b1").SetVal(string(data))

	got, err := s.Get(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Equal(t, 0, got.SlotIndex)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Get_Missing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db)

	mock.ExpectGet("booking:missing").RedisNil()

	_, err := s.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, status.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_ByCourt(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db)

	b1 := testBooking()
	b2 := testBooking()
	b2.ID = "b2"
	b2.UserID = "u2"
	b2.Status = models.StatusWaitlisted
	b2.SlotIndex = models.NoSlot

	d1, err := json.Marshal(b1)
	require.NoError(t, err)
	d2, err := json.Marshal(b2)
	require.NoError(t, err)

	mock.ExpectSMembers("court:bookings:c1").SetVal([]string{"b1", "b2"})
	mock.ExpectMGet("booking:b1", "booking:b2").SetVal([]interface{}{string(d1), string(d2)})

	bookings, err := s.ByCourt(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "b1", bookings[0].ID)
	assert.Equal(t, "b2", bookings[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_ByCourt_SkipsDanglingIDs(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db)

	b1 := testBooking()
	d1, err := json.Marshal(b1)
	require.NoError(t, err)

	// b9 is in the id set but its record key is gone
	mock.ExpectSMembers("court:bookings:c1").SetVal([]string{"b1", "b9"})
	mock.ExpectMGet("booking:b1", "booking:b9").SetVal([]interface{}{string(d1), nil})

	bookings, err := s.ByCourt(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "b1", bookings[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_ByUser_Empty(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db)

	mock.ExpectSMembers("user:bookings:u9").SetVal([]string{})

	bookings, err := s.ByUser(context.Background(), "u9")
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_ActiveByUserAndCourt(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db)

	b := testBooking()
	data, err := json.Marshal(b)
	require.NoError(t, err)

	mock.ExpectGet("active:c1:u1").SetVal("b1")
	mock.ExpectGet("booking:b1").SetVal(string(data))

	got, err := s.ActiveByUserAndCourt(context.Background(), "u1", "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "b1", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_ActiveByUserAndCourt_NonePresent(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db)

	mock.ExpectGet("active:c1:u1").RedisNil()

	got, err := s.ActiveByUserAndCourt(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
