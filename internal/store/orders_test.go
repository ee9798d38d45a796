package store

import (
	"testing"

	"botmarket/internal/domain"

	"github.com/stretchr/testify/require"
)

// seedOrder creates a pending order for a fresh user and product
func seedOrder(t *testing.T, s *OrderStore) *domain.Order {
	t.Helper()
	user := seedUser(t, s.db, testWallet)
	product := seedProduct(t, s.db, 100.0)
	order := domain.Order{
		UserID:         user.ID,
		ProductID:      product.ID,
		AmountUSD:      product.Price,
		AmountCrypto:   product.Price,
		CryptoCurrency: "USDT",
	}
	require.NoError(t, s.Create(&order))
	return &order
}

func TestOrderCreate_StartsPending(t *testing.T) {
	orders := NewOrderStore(testDB(t))
	order := seedOrder(t, orders)
	require.Equal(t, domain.OrderStatusPending, order.Status)
	require.Empty(t, order.TransactionHash)
}

func TestConfirmPayment(t *testing.T) {
	orders := NewOrderStore(testDB(t))
	order := seedOrder(t, orders)

	paid, err := orders.ConfirmPayment(order.ID, "0xfeedbeef")
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPaid, paid.Status)
	require.Equal(t, "0xfeedbeef", paid.TransactionHash)
}

func TestConfirmPayment_RejectsSecondConfirmation(t *testing.T) {
	orders := NewOrderStore(testDB(t))
	order := seedOrder(t, orders)

	_, err := orders.ConfirmPayment(order.ID, "0xfeedbeef")
	require.NoError(t, err)

	// Same hash or not, a paid order cannot be confirmed again
	_, err = orders.ConfirmPayment(order.ID, "0xfeedbeef")
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = orders.ConfirmPayment(order.ID, "0xother")
	require.ErrorIs(t, err, ErrInvalidState)

	// The recorded hash is the first one
	reread, err := orders.Get(order.ID)
	require.NoError(t, err)
	require.Equal(t, "0xfeedbeef", reread.TransactionHash)
}

func TestConfirmPayment_NotFound(t *testing.T) {
	orders := NewOrderStore(testDB(t))
	_, err := orders.ConfirmPayment(9999, "0xfeedbeef")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCancel(t *testing.T) {
	orders := NewOrderStore(testDB(t))
	order := seedOrder(t, orders)

	cancelled, err := orders.Cancel(order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
}

func TestCancel_PaidOrderUnchanged(t *testing.T) {
	orders := NewOrderStore(testDB(t))
	order := seedOrder(t, orders)

	_, err := orders.ConfirmPayment(order.ID, "0xfeedbeef")
	require.NoError(t, err)

	_, err = orders.Cancel(order.ID)
	require.ErrorIs(t, err, ErrInvalidState)

	// Status is left as paid
	reread, err := orders.Get(order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPaid, reread.Status)
}

func TestCancel_CancelledOrderRejected(t *testing.T) {
	orders := NewOrderStore(testDB(t))
	order := seedOrder(t, orders)

	_, err := orders.Cancel(order.ID)
	require.NoError(t, err)
	_, err = orders.Cancel(order.ID)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestCancel_NotFound(t *testing.T) {
	orders := NewOrderStore(testDB(t))
	_, err := orders.Cancel(9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListByUser(t *testing.T) {
	db := testDB(t)
	orders := NewOrderStore(db)
	user := seedUser(t, db, testWallet)
	other := seedUser(t, db, "0x1111111111111111111111111111111111111111")
	product := seedProduct(t, db, 50.0)

	for _, uid := range []uint{user.ID, user.ID, other.ID} {
		require.NoError(t, orders.Create(&domain.Order{
			UserID: uid, ProductID: product.ID, AmountUSD: 50, AmountCrypto: 50, CryptoCurrency: "USDT",
		}))
	}

	mine, err := orders.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, o := range mine {
		require.Equal(t, user.ID, o.UserID)
	}
}
