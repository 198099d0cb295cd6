package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOps(t *testing.T) *DatabaseOperations {
	t.Helper()
	db, err := InitializeDatabase(filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDatabaseOperations(db)
}

func TestInsertAndGetLeadByReference(t *testing.T) {
	ops := testOps(t)

	lead := &Lead{
		ReferenceID:         "SIPH-ABCD1234",
		Name:                "Jamie",
		Email:               "jamie@example.com",
		ConversationSummary: "App for phone - track workouts",
		InquiryType:         "freelance_project",
	}
	require.NoError(t, ops.InsertLead(lead))
	assert.NotZero(t, lead.ID)
	assert.False(t, lead.CreatedAt.IsZero())

	got, err := ops.GetLeadByReference("SIPH-ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, "Jamie", got.Name)
	assert.Equal(t, "jamie@example.com", got.Email)
	assert.Equal(t, "freelance_project", got.InquiryType)
	assert.False(t, got.IsDuplicate)
}

func TestGetLeadByReferenceNotFound(t *testing.T) {
	ops := testOps(t)
	_, err := ops.GetLeadByReference("SIPH-00000000")
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestDuplicateReferenceIDRejected(t *testing.T) {
	ops := testOps(t)

	first := &Lead{ReferenceID: "SIPH-AAAA1111", Name: "A", Email: "a@example.com"}
	require.NoError(t, ops.InsertLead(first))

	second := &Lead{ReferenceID: "SIPH-AAAA1111", Name: "B", Email: "b@example.com"}
	assert.Error(t, ops.InsertLead(second))
}

func TestHasRecentLeadWindow(t *testing.T) {
	ops := testOps(t)

	old := &Lead{
		ReferenceID: "SIPH-OLD00001",
		Name:        "Old",
		Email:       "repeat@example.com",
		CreatedAt:   time.Now().UTC().Add(-48 * time.Hour),
	}
	require.NoError(t, ops.InsertLead(old))

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	recent, err := ops.HasRecentLead("repeat@example.com", cutoff)
	require.NoError(t, err)
	assert.False(t, recent)

	fresh := &Lead{ReferenceID: "SIPH-NEW00001", Name: "New", Email: "repeat@example.com"}
	require.NoError(t, ops.InsertLead(fresh))

	recent, err = ops.HasRecentLead("repeat@example.com", cutoff)
	require.NoError(t, err)
	assert.True(t, recent)

	recent, err = ops.HasRecentLead("other@example.com", cutoff)
	require.NoError(t, err)
	assert.False(t, recent)
}

func TestSchemaVersionPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "leads.db")
	db, err := InitializeDatabase(dbPath)
	require.NoError(t, err)

	version, err := GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)
	require.NoError(t, db.Close())

	// Reopening an existing database is a no-op.
	db, err = InitializeDatabase(dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	version, err = GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)
}

func TestCountLeads(t *testing.T) {
	ops := testOps(t)

	count, err := ops.CountLeads()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, ops.InsertLead(&Lead{ReferenceID: "SIPH-C0000001", Name: "X", Email: "x@example.com"}))
	count, err = ops.CountLeads()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
