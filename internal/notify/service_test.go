package notify

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"clubledger/internal/logger"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

func newTestService(rdb *redis.Client) *Service {
	return &Service{
		redis:    rdb,
		from:     "noreply@clubledger.local",
		fromName: "ClubLedger",
		smtpHost: "smtp.test.com",
		smtpPort: "587",
		smtpUser: "test@example.com",
		smtpPass: "password",
	}
}

func TestSend(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*`).SetVal(1)

	svc := newTestService(db)

	err := svc.Send(ctx, "user@example.com", "User", "Hello", "Test body")
	assert.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// The queue holds JSON text, not raw bytes, so the worker on the other
// side (and anything inspecting the list) can read the document as-is.
func TestSendQueuesJSONText(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	var queued Job
	mock.CustomMatch(func(expected, actual []interface{}) error {
		for _, arg := range actual {
			raw, ok := arg.(string)
			if !ok || !strings.HasPrefix(raw, "{") {
				continue
			}
			return json.Unmarshal([]byte(raw), &queued)
		}
		return errors.New("no JSON payload pushed")
	}).ExpectLPush(queueKey, `{}`).SetVal(1)

	svc := newTestService(db)

	require.NoError(t, svc.Send(ctx, "mehmet@example.com", "Mehmet", "Hello", "Test body"))
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "mehmet@example.com", queued.To)
	assert.Equal(t, "Mehmet", queued.Name)
	assert.Equal(t, "Hello", queued.Subject)
	assert.Equal(t, "Test body", queued.Body)
	assert.Equal(t, 0, queued.Tries)
}

func TestSendQueueError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*`).SetErr(context.DeadlineExceeded)

	svc := newTestService(db)

	err := svc.Send(ctx, "user@example.com", "User", "Hello", "Test body")
	assert.Error(t, err)
}

func TestTransferReceivedQueuesNotification(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*You received a transfer.*`).SetVal(1)

	svc := newTestService(db)

	svc.TransferReceived(ctx, "mehmet@example.com", "Mehmet", "Ayse", 750)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletBlockedQueuesNotification(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*wallet has been blocked.*`).SetVal(1)

	svc := newTestService(db)

	svc.WalletBlocked(ctx, "ayse@example.com", "Ayse")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectLLen(queueKey).SetVal(3)

	svc := newTestService(db)

	assert.Equal(t, int64(3), svc.QueueLength(ctx))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "7.50", formatAmount(750))
	assert.Equal(t, "0.05", formatAmount(5))
	assert.Equal(t, "12.00", formatAmount(1200))
	assert.Equal(t, "-3.25", formatAmount(-325))
	assert.Equal(t, "0.00", formatAmount(0))
}
