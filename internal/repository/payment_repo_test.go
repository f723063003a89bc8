package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"photodesk/internal/database"
	"photodesk/internal/domain"
)

func setupLedgerDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Booking{},
		&domain.BookingAddOn{},
		&domain.DownloadSelection{},
		&domain.SelectionFile{},
		&domain.Payment{},
	))
	return db
}

func seedBooking(t *testing.T, db *gorm.DB, deposit float64) *domain.Booking {
	b := &domain.Booking{
		ClientID:          1,
		PackageID:         1,
		Country:           domain.CountryKZ,
		DateTime:          time.Now().Add(48 * time.Hour),
		Price:             100,
		Currency:          "KZT",
		DepositAmount:     deposit,
		ApprovalStatus:    domain.ApprovalApproved,
		FulfillmentStatus: domain.FulfillmentScheduled,
		PaymentStatus:     domain.PaymentUnpaid,
		AddOns: []domain.BookingAddOn{
			{AddOnID: 5, Quantity: 2, UnitPrice: 20, TotalPrice: 40, Currency: "KZT"},
		},
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func reloadBooking(t *testing.T, db *gorm.DB, id int64) *domain.Booking {
	var b domain.Booking
	require.NoError(t, db.Preload("AddOns").First(&b, id).Error)
	return &b
}

func TestVerifyBankTransfer_FullAmountSettlesBooking(t *testing.T) {
	db := setupLedgerDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()
	b := seedBooking(t, db, 0)

	p := &domain.Payment{
		OwnerKind: domain.OwnerBooking,
		OwnerID:   b.ID,
		Amount:    140,
		Currency:  "KZT",
		Method:    domain.MethodBankTransfer,
		Status:    domain.PaymentStatePending,
		Reference: "ref-1",
	}
	require.NoError(t, repo.Create(ctx, p))

	// Pending payments contribute nothing.
	got := reloadBooking(t, db, b.ID)
	assert.Equal(t, domain.PaymentUnpaid, got.PaymentStatus)

	res, err := repo.VerifyBankTransfer(ctx, p.ID, true, 9, "", time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, 140.0, res.AmountPaid)
	assert.Equal(t, domain.PaymentPaid, res.PaymentStatus)

	got = reloadBooking(t, db, b.ID)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, 140.0, got.AmountPaid)
	assert.True(t, got.DepositPaid)
}

func TestVerifyBankTransfer_DepositMakesPartiallyPaid(t *testing.T) {
	db := setupLedgerDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()
	b := seedBooking(t, db, 50)

	p := &domain.Payment{
		OwnerKind: domain.OwnerBooking,
		OwnerID:   b.ID,
		Amount:    50,
		Currency:  "KZT",
		Method:    domain.MethodBankTransfer,
		Status:    domain.PaymentStatePending,
	}
	require.NoError(t, repo.Create(ctx, p))

	_, err := repo.VerifyBankTransfer(ctx, p.ID, true, 9, "", time.Now().UTC())
	require.NoError(t, err)

	got := reloadBooking(t, db, b.ID)
	assert.Equal(t, domain.PaymentPartiallyPaid, got.PaymentStatus)
	assert.Equal(t, 50.0, got.AmountPaid)
	assert.True(t, got.DepositPaid)
}

func TestVerifyBankTransfer_SecondVerifyIsInvalid(t *testing.T) {
	db := setupLedgerDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()
	b := seedBooking(t, db, 0)

	p := &domain.Payment{
		OwnerKind: domain.OwnerBooking, OwnerID: b.ID,
		Amount: 140, Currency: "KZT",
		Method: domain.MethodBankTransfer, Status: domain.PaymentStatePending,
	}
	require.NoError(t, repo.Create(ctx, p))

	_, err := repo.VerifyBankTransfer(ctx, p.ID, true, 9, "", time.Now().UTC())
	require.NoError(t, err)

	_, err = repo.VerifyBankTransfer(ctx, p.ID, false, 9, "changed my mind", time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestMarkCardPaid_ReplayIsIdempotent(t *testing.T) {
	db := setupLedgerDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()
	b := seedBooking(t, db, 0)

	p := &domain.Payment{
		OwnerKind: domain.OwnerBooking, OwnerID: b.ID,
		Amount: 140, Currency: "KZT",
		Method: domain.MethodCard, Status: domain.PaymentStatePending,
		IntentID: "pi_1",
	}
	require.NoError(t, repo.Create(ctx, p))

	res, err := repo.MarkCardPaid(ctx, "pi_1", "ch_1", time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, domain.PaymentPaid, res.PaymentStatus)

	// Same event delivered again.
	res, err = repo.MarkCardPaid(ctx, "pi_1", "ch_1", time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, 140.0, res.AmountPaid)
	assert.Equal(t, domain.PaymentPaid, res.PaymentStatus)

	got := reloadBooking(t, db, b.ID)
	assert.Equal(t, 140.0, got.AmountPaid)
}

func TestMarkCardPaid_OverridesEarlierFailure(t *testing.T) {
	db := setupLedgerDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()
	b := seedBooking(t, db, 0)

	p := &domain.Payment{
		OwnerKind: domain.OwnerBooking, OwnerID: b.ID,
		Amount: 140, Currency: "KZT",
		Method: domain.MethodCard, Status: domain.PaymentStatePending,
		IntentID: "pi_1",
	}
	require.NoError(t, repo.Create(ctx, p))

	_, err := repo.MarkCardFailed(ctx, "pi_1", "card_declined")
	require.NoError(t, err)

	res, err := repo.MarkCardPaid(ctx, "pi_1", "ch_1", time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, domain.PaymentPaid, res.PaymentStatus)

	fresh, err := repo.GetByIntentID(ctx, "pi_1")
	require.NoError(t, err)
	assert.Empty(t, fresh.FailureReason)
}

func TestMarkCardFailed_AfterPaidIsIgnored(t *testing.T) {
	db := setupLedgerDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()
	b := seedBooking(t, db, 0)

	p := &domain.Payment{
		OwnerKind: domain.OwnerBooking, OwnerID: b.ID,
		Amount: 140, Currency: "KZT",
		Method: domain.MethodCard, Status: domain.PaymentStatePending,
		IntentID: "pi_1",
	}
	require.NoError(t, repo.Create(ctx, p))

	_, err := repo.MarkCardPaid(ctx, "pi_1", "ch_1", time.Now().UTC())
	require.NoError(t, err)

	res, err := repo.MarkCardFailed(ctx, "pi_1", "late failure")
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, domain.PaymentPaid, res.PaymentStatus)
}

func TestApplyCardRefund_FullRefundRevertsDeposit(t *testing.T) {
	db := setupLedgerDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()
	b := seedBooking(t, db, 50)

	p := &domain.Payment{
		OwnerKind: domain.OwnerBooking, OwnerID: b.ID,
		Amount: 140, Currency: "KZT",
		Method: domain.MethodCard, Status: domain.PaymentStatePending,
		IntentID: "pi_1",
	}
	require.NoError(t, repo.Create(ctx, p))
	_, err := repo.MarkCardPaid(ctx, "pi_1", "ch_1", time.Now().UTC())
	require.NoError(t, err)

	got := reloadBooking(t, db, b.ID)
	require.True(t, got.DepositPaid)

	res, err := repo.ApplyCardRefund(ctx, "ch_1", 140)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, domain.PaymentUnpaid, res.PaymentStatus)

	// The deposit flag is re-derived, not latched.
	got = reloadBooking(t, db, b.ID)
	assert.Equal(t, 0.0, got.AmountPaid)
	assert.False(t, got.DepositPaid)

	fresh, err := repo.GetByIntentID(ctx, "pi_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStateRefunded, fresh.Status)
}

func TestApplyCardRefund_PartialThenReplay(t *testing.T) {
	db := setupLedgerDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()
	b := seedBooking(t, db, 0)

	p := &domain.Payment{
		OwnerKind: domain.OwnerBooking, OwnerID: b.ID,
		Amount: 140, Currency: "KZT",
		Method: domain.MethodCard, Status: domain.PaymentStatePending,
		IntentID: "pi_1",
	}
	require.NoError(t, repo.Create(ctx, p))
	_, err := repo.MarkCardPaid(ctx, "pi_1", "ch_1", time.Now().UTC())
	require.NoError(t, err)

	res, err := repo.ApplyCardRefund(ctx, "ch_1", 40)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, 100.0, res.AmountPaid)
	assert.Equal(t, domain.PaymentPartiallyPaid, res.PaymentStatus)

	// Cumulative amount replayed: nothing to change.
	res, err = repo.ApplyCardRefund(ctx, "ch_1", 40)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, 100.0, res.AmountPaid)
}

func TestLedger_SelectionOwner(t *testing.T) {
	db := setupLedgerDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	sel := &domain.DownloadSelection{
		EventID:        1,
		Token:          "tok-1",
		Country:        domain.CountryKZ,
		Price:          5000,
		Currency:       "KZT",
		DeliveryStatus: domain.DeliveryPendingPayment,
		PaymentStatus:  domain.PaymentUnpaid,
	}
	require.NoError(t, db.Create(sel).Error)

	p := &domain.Payment{
		OwnerKind: domain.OwnerSelection, OwnerID: sel.ID,
		Amount: 5000, Currency: "KZT",
		Method: domain.MethodCard, Status: domain.PaymentStatePending,
		IntentID: "pi_sel",
	}
	require.NoError(t, repo.Create(ctx, p))

	res, err := repo.MarkCardPaid(ctx, "pi_sel", "ch_sel", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, res.PaymentStatus)
	assert.Equal(t, domain.SelectionOwner(sel.ID), res.Owner)

	var got domain.DownloadSelection
	require.NoError(t, db.First(&got, sel.ID).Error)
	assert.Equal(t, 5000.0, got.AmountPaid)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	// The payment ledger never writes delivery state.
	assert.Equal(t, domain.DeliveryPendingPayment, got.DeliveryStatus)
}
