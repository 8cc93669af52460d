package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
	"coilworks/internal/testutil"
)

// Unit Tests

func TestNewMySQLRecordRepositories(t *testing.T) {
	db := &sql.DB{}

	enquiries := NewMySQLEnquiryRepository(db)
	assert.Equal(t, "Enquiries", enquiries.table)
	assert.Equal(t, domain.KindEnquiry, enquiries.kind)

	orders := NewMySQLOrderRepository(db)
	assert.Equal(t, "Orders", orders.table)
	assert.Equal(t, domain.KindOrder, orders.kind)
}

// Integration Tests

func newTestRecord(id, humanID, userID string, createdAt time.Time) *domain.Record {
	return &domain.Record{
		ID:      id,
		HumanID: humanID,
		Kind:    domain.KindEnquiry,
		User: domain.Submitter{
			UserID:      userID,
			Name:        "Ravi",
			Email:       "ravi@example.com",
			GSTNumber:   "29ABCDE1234F1Z5",
			CompanyName: "Frost Systems",
		},
		Status: domain.EnquiryRequested,
		Items: []domain.RecordItem{{
			Product: domain.CatalogItem{
				ID:    "P1",
				SKU:   "CU-38-4R",
				Name:  "Copper coil 3/8 4 row",
				Price: decimal.RequireFromString("1250.50"),
			},
			Quantity: 2,
		}},
		CustomItems: []domain.CustomCoil{{CoilType: "evaporator", TubeType: "copper", Quantity: 1}},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestRecordRepository_InsertAndFind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLEnquiryRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	record := newTestRecord("11111111-1111-1111-1111-111111111111", "ENQ-11111111", "u-1", now)
	require.NoError(t, repo.Insert(ctx, record))

	found, err := repo.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.HumanID, found.HumanID)
	assert.Equal(t, domain.EnquiryRequested, found.Status)
	assert.Equal(t, record.User, found.User)
	require.Len(t, found.Items, 1)
	assert.True(t, found.Items[0].Product.Price.Equal(decimal.RequireFromString("1250.50")))
	assert.Equal(t, record.CustomItems, found.CustomItems)

	byHuman, err := repo.FindByID(ctx, "ENQ-11111111")
	require.NoError(t, err)
	assert.Equal(t, record.ID, byHuman.ID)
}

func TestRecordRepository_FindByUserOrdersNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLEnquiryRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, repo.Insert(ctx, newTestRecord("a1", "ENQ-A1", "u-1", now.Add(-time.Hour))))
	require.NoError(t, repo.Insert(ctx, newTestRecord("a2", "ENQ-A2", "u-1", now)))
	require.NoError(t, repo.Insert(ctx, newTestRecord("b1", "ENQ-B1", "u-2", now)))

	records, err := repo.FindByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a2", records[0].ID)
	assert.Equal(t, "a1", records[1].ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecordRepository_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLEnquiryRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	record := newTestRecord("c1", "ENQ-C1", "u-1", now)
	require.NoError(t, repo.Insert(ctx, record))

	later := now.Add(time.Minute)
	require.NoError(t, repo.UpdateStatus(ctx, "c1", domain.EnquiryProcessing, later))

	found, err := repo.FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, domain.EnquiryProcessing, found.Status)
	require.Len(t, found.Items, 1)
	assert.Equal(t, 2, found.Items[0].Quantity)
	assert.Equal(t, "CU-38-4R", found.Items[0].Product.SKU)
}

func TestRecordRepository_UpdateStatus_SameValuesTwice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLEnquiryRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, repo.Insert(ctx, newTestRecord("d1", "ENQ-D1", "u-1", now)))

	later := now.Add(time.Minute)
	require.NoError(t, repo.UpdateStatus(ctx, "d1", domain.EnquiryProcessing, later))
	require.NoError(t, repo.UpdateStatus(ctx, "d1", domain.EnquiryProcessing, later))
}

func TestRecordRepository_UpdateStatus_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	err := repo.UpdateStatus(context.Background(), "missing", domain.OrderShipped, time.Now())
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
