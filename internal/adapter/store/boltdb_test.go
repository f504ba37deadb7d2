package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"lexis/config"
	"lexis/internal/domain"
	"lexis/internal/port"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testDoc(id, digest string, added time.Time) domain.Document {
	return domain.Document{
		ID:        id,
		Title:     id + ".txt",
		Digest:    digest,
		Words:     3,
		AddedAt:   added,
		UpdatedAt: added,
	}
}

func TestBoltStore_Documents(t *testing.T) {
	s := newTestStore(t)
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.PutDocument(testDoc("b", "d-b", t0.Add(time.Hour)), "second text"))
	require.NoError(t, s.PutDocument(testDoc("a", "d-a", t0), "first text"))

	doc, err := s.GetDocument("a")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", doc.Title)
	assert.True(t, doc.AddedAt.Equal(t0))

	text, err := s.GetText("b")
	require.NoError(t, err)
	assert.Equal(t, "second text", text)

	docs, err := s.ListDocuments()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)

	found, ok, err := s.FindByDigest("d-b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", found.ID)

	_, ok, err = s.FindByDigest("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBoltStore_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetDocument("nope")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	_, err = s.GetText("nope")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	assert.ErrorIs(t, s.DeleteDocument("nope"), domain.ErrDocumentNotFound)
	assert.ErrorIs(t, s.PutReport(domain.SavedReport{DocID: "nope"}), domain.ErrDocumentNotFound)
}

func TestBoltStore_Reports(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.PutDocument(testDoc("a", "d-a", time.Now()), "text"))
	require.NoError(t, s.PutDocument(testDoc("ab", "d-ab", time.Now()), "text"))

	report := domain.SavedReport{DocID: "a", Target: "cat", Backend: "basic"}
	report.Report.Frequency.TotalWords = 7
	require.NoError(t, s.PutReport(report))
	require.NoError(t, s.PutReport(domain.SavedReport{DocID: "ab", Backend: "basic"}))

	got, err := s.GetReport("a", "cat")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Report.Frequency.TotalWords)

	_, err = s.GetReport("a", "")
	assert.ErrorIs(t, err, port.ErrReportNotFound)

	require.NoError(t, s.DeleteDocument("a"))
	_, err = s.GetReport("a", "cat")
	assert.ErrorIs(t, err, port.ErrReportNotFound)
	_, err = s.GetReport("ab", "")
	assert.NoError(t, err, "reports of a document sharing the id prefix survive")

	_, ok, err := s.FindByDigest("d-a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBoltStore_ReplaceDropsReports(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.PutDocument(testDoc("a", "old", time.Now()), "old text"))
	require.NoError(t, s.PutReport(domain.SavedReport{DocID: "a"}))

	require.NoError(t, s.PutDocument(testDoc("a", "new", time.Now()), "new text"))

	_, err := s.GetReport("a", "")
	assert.ErrorIs(t, err, port.ErrReportNotFound)
	_, ok, err := s.FindByDigest("old")
	require.NoError(t, err)
	assert.False(t, ok)
	found, ok, err := s.FindByDigest("new")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", found.ID)
}

func TestBoltStore_ClearReports(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.PutDocument(testDoc("a", "d-a", time.Now()), "text"))
	require.NoError(t, s.PutReport(domain.SavedReport{DocID: "a"}))

	require.NoError(t, s.ClearReports())

	_, err := s.GetReport("a", "")
	assert.ErrorIs(t, err, port.ErrReportNotFound)
	_, err = s.GetDocument("a")
	assert.NoError(t, err)
}

func TestMigrate_Fresh(t *testing.T) {
	s := newTestStore(t)
	cfg := config.DefaultConfig()

	result, err := s.Migrate(cfg)
	require.NoError(t, err)
	assert.True(t, result.NeedsMigration)

	info, err := s.GetSchemaInfo()
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, info.Version)
	assert.Equal(t, ComputeConfigHash(cfg), info.ConfigHash)

	result, err = s.CheckMigration(cfg)
	require.NoError(t, err)
	assert.False(t, result.NeedsMigration)
	assert.False(t, result.StaleReports)
}

func TestMigrate_BackendChangeClearsReports(t *testing.T) {
	s := newTestStore(t)
	cfg := config.DefaultConfig()
	_, err := s.Migrate(cfg)
	require.NoError(t, err)

	require.NoError(t, s.PutDocument(testDoc("a", "d-a", time.Now()), "text"))
	require.NoError(t, s.PutReport(domain.SavedReport{DocID: "a", Backend: cfg.NLP.Backend}))

	cfg.NLP.Backend = "basic"
	result, err := s.Migrate(cfg)
	require.NoError(t, err)
	assert.True(t, result.StaleReports)

	_, err = s.GetReport("a", "")
	assert.ErrorIs(t, err, port.ErrReportNotFound)
}

func TestMigrate_V1BuildsDigestIndex(t *testing.T) {
	s := newTestStore(t)
	cfg := config.DefaultConfig()
	require.NoError(t, s.PutDocument(testDoc("a", "d-a", time.Now()), "text"))

	// simulate a v1 library without the digest index
	require.NoError(t, s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketDigests); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketDigests)
		return err
	}))
	require.NoError(t, s.SetSchemaInfo(&SchemaInfo{Version: 1, ConfigHash: ComputeConfigHash(cfg)}))

	_, ok, err := s.FindByDigest("d-a")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.Migrate(cfg)
	require.NoError(t, err)

	found, ok, err := s.FindByDigest("d-a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", found.ID)
}

func TestMigrate_NewerSchemaRefused(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetSchemaInfo(&SchemaInfo{Version: CurrentSchemaVersion + 1}))

	result, err := s.Migrate(config.DefaultConfig())
	assert.Error(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Unsupported)
}
