package db

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/solatis/fontfilter/internal/records"
	"github.com/solatis/fontfilter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	database, err := Open("sqlite://" + path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	database := openTestDB(t)
	require.NoError(t, MigrateUp(database))
	store, err := NewStore(database)
	require.NoError(t, err)
	return store
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	_, err := Open("mysql://localhost/fonts")
	assert.ErrorContains(t, err, "unsupported database scheme")
}

func TestMigrations(t *testing.T) {
	database := openTestDB(t)

	pending, err := Pending(database)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_initial_schema.sql", "002_profile_description.sql"}, pending)

	require.NoError(t, MigrateUp(database))
	// second run is a no-op
	require.NoError(t, MigrateUp(database))

	statuses, err := MigrateStatus(database)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	for _, s := range statuses {
		assert.True(t, s.Applied, s.ID)
		assert.NotNil(t, s.AppliedAt, s.ID)
		assert.Len(t, s.Checksum, 64)
	}

	pending, err = Pending(database)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestMigrations_ChecksumMismatch(t *testing.T) {
	database := openTestDB(t)
	require.NoError(t, MigrateUp(database))

	_, err := database.Exec("UPDATE migrations SET checksum = 'tampered' WHERE migration_id = '001_initial_schema.sql'")
	require.NoError(t, err)

	err = MigrateUp(database)
	assert.ErrorContains(t, err, "checksum mismatch")
}

func TestStripComments(t *testing.T) {
	sql := "-- heading\nCREATE TABLE t (id INTEGER);\n  -- trailing\n"
	assert.Equal(t, "CREATE TABLE t (id INTEGER);\n", stripComments(sql))
}

func TestStore_Records(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	latin, err := records.NewLangSet("en", "de")
	require.NoError(t, err)
	first := records.NewPattern("").
		Add(records.AttrFamily, records.Text("DejaVu Sans")).
		Add(records.AttrFamily, records.Text("DejaVu")).
		Add(records.AttrStyle, records.Text("Bold")).
		Add(records.AttrWeight, records.Int(records.WeightBold)).
		Add(records.AttrSize, records.RangeOf(records.NewRange(6, 72))).
		Add(records.AttrScalable, records.Bool(true)).
		Add(records.AttrCharSet, records.CharSetOf(records.CharSetFromString("abc"))).
		Add(records.AttrLang, records.LangSetOf(latin))
	second := records.NewPattern("").
		Add(records.AttrFamily, records.Text("Noto Serif")).
		Add(records.AttrWeight, records.Int(records.WeightRegular))

	require.NoError(t, store.InsertRecord(ctx, first))
	require.NoError(t, store.InsertRecord(ctx, second))

	n, err := store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	set, err := store.LoadRecords(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	loaded := set.At(0).(*records.Pattern)
	assert.Equal(t, first.ID(), loaded.ID())
	assert.Equal(t, "DejaVu Sans Bold", loaded.Name())
	assert.Len(t, loaded.Values(records.AttrFamily), 2)

	for _, attr := range first.Attributes() {
		want, _ := first.Get(attr)
		got, ok := loaded.Get(attr)
		require.True(t, ok, attr)
		assert.True(t, records.Equal(want, got), "%s: %v != %v", attr, want, got)
	}
	assert.Equal(t, second.ID(), set.At(1).(*records.Pattern).ID())

	require.NoError(t, store.DeleteRecord(ctx, first.ID()))
	n, err = store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_InsertRecordRejectsFace(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	p := records.NewPattern("").Add(records.AttrFTFace, records.Face(&struct{}{}))
	assert.Error(t, store.InsertRecord(ctx, p))

	n, err := store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_Profiles(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	p := &types.Profile{
		Name:        "prefer-bold-italic",
		Description: "bold first, then italic",
		Mode:        types.ModeSoft,
		Conditions: []types.Expr{
			{Attribute: "weight", Op: ">=", Value: 200},
			{Logic: "or", Left: &types.Expr{Attribute: "slant", Value: "italic"}, Right: &types.Expr{Char: "U+00E9"}},
		},
	}
	require.NoError(t, store.SaveProfile(ctx, p))
	assert.NotEmpty(t, p.ProfileID)

	got, err := store.GetProfileByName(ctx, "prefer-bold-italic")
	require.NoError(t, err)
	assert.Equal(t, p.ProfileID, got.ProfileID)
	assert.Equal(t, types.ModeSoft, got.Mode)
	assert.Equal(t, "bold first, then italic", got.Description)
	require.Len(t, got.Conditions, 2)
	assert.Equal(t, "weight", got.Conditions[0].Attribute)
	assert.Equal(t, json.Number("200"), got.Conditions[0].Value)
	require.NotNil(t, got.Conditions[1].Right)
	assert.Equal(t, "U+00E9", got.Conditions[1].Right.Char)

	// saving under the same name replaces the stored definition
	replacement := &types.Profile{Name: "prefer-bold-italic", Conditions: []types.Expr{{Attribute: "weight", Value: "bold"}}}
	require.NoError(t, store.SaveProfile(ctx, replacement))
	got, err = store.GetProfileByName(ctx, "prefer-bold-italic")
	require.NoError(t, err)
	assert.Equal(t, p.ProfileID, got.ProfileID)
	assert.Equal(t, types.ModeStrict, got.Mode)
	assert.Len(t, got.Conditions, 1)

	require.NoError(t, store.SaveProfile(ctx, &types.Profile{Name: "a-first", Conditions: []types.Expr{{Char: "a"}}}))
	all, err := store.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a-first", all[0].Name)

	require.NoError(t, store.DeleteProfile(ctx, "a-first"))
	err = store.DeleteProfile(ctx, "a-first")
	assert.True(t, errors.Is(err, types.ErrProfileNotFound))

	_, err = store.GetProfileByName(ctx, "missing")
	assert.True(t, errors.Is(err, types.ErrProfileNotFound))
}
