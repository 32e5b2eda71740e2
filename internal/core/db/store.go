package db

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/solatis/fontfilter/internal/records"
	"github.com/solatis/fontfilter/internal/types"
)

// Store reads and writes catalog records and filter profiles.
// Storage failures are wrapped with types.ErrStorage.
type Store struct {
	db      *sqlx.DB
	queries *Queries
}

type recordRow struct {
	RecordID  string `db:"record_id"`
	Name      string `db:"name"`
	CreatedAt int64  `db:"created_at"`
}

type attributeRow struct {
	RecordID  string `db:"record_id"`
	Attribute string `db:"attribute"`
	Position  int    `db:"position"`
	Value     string `db:"value"`
}

type profileRow struct {
	ProfileID   string `db:"profile_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Mode        string `db:"mode"`
	Expression  string `db:"expression"`
}

// NewStore loads the named queries for database.
func NewStore(database *sqlx.DB) (*Store, error) {
	queries, err := LoadQueries(database)
	if err != nil {
		return nil, err
	}
	return &Store{db: database, queries: queries}, nil
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, types.ErrStorage, err)
}

// InsertRecord stores p and all its attribute values in one transaction.
func (s *Store) InsertRecord(ctx context.Context, p *records.Pattern) error {
	// Encode before opening the transaction so unserializable values fail fast.
	type encoded struct {
		attribute string
		position  int
		value     string
	}
	var values []encoded
	for _, attr := range p.Attributes() {
		for i, v := range p.Values(attr) {
			data, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("record %s attribute %s: %w", p.ID(), attr, err)
			}
			values = append(values, encoded{attribute: attr, position: i, value: string(data)})
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageError("begin insert record", err)
	}
	defer tx.Rollback()

	if _, err := s.queries.Exec(ctx, tx, "insert-record", string(p.ID()), p.Name(), time.Now().UnixNano()); err != nil {
		return storageError("insert record", err)
	}
	for _, v := range values {
		if _, err := s.queries.Exec(ctx, tx, "insert-record-attribute", string(p.ID()), v.attribute, v.position, v.value); err != nil {
			return storageError("insert record attribute", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageError("commit insert record", err)
	}
	return nil
}

// LoadRecords returns every stored record in insertion order as an
// unaccounted set.
func (s *Store) LoadRecords(ctx context.Context) (*records.Set, error) {
	var rows []recordRow
	if err := s.queries.Select(ctx, &rows, "list-records"); err != nil {
		return nil, storageError("list records", err)
	}
	var attrs []attributeRow
	if err := s.queries.Select(ctx, &attrs, "list-record-attributes"); err != nil {
		return nil, storageError("list record attributes", err)
	}

	byID := make(map[string]*records.Pattern, len(rows))
	ordered := make([]records.Record, 0, len(rows))
	for _, row := range rows {
		p := records.NewPattern(types.RecordID(row.RecordID))
		byID[row.RecordID] = p
		ordered = append(ordered, p)
	}
	for _, a := range attrs {
		p, ok := byID[a.RecordID]
		if !ok {
			continue
		}
		var v records.Value
		if err := json.Unmarshal([]byte(a.Value), &v); err != nil {
			return nil, fmt.Errorf("record %s attribute %s: %w", a.RecordID, a.Attribute, err)
		}
		p.Add(a.Attribute, v)
	}

	return records.NewSetOf(ordered...), nil
}

// CountRecords returns the number of stored records.
func (s *Store) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := s.queries.Get(ctx, &n, "count-records"); err != nil {
		return 0, storageError("count records", err)
	}
	return n, nil
}

// DeleteRecord removes a record and its attributes.
func (s *Store) DeleteRecord(ctx context.Context, id types.RecordID) error {
	if _, err := s.queries.Exec(ctx, s.db, "delete-record", string(id)); err != nil {
		return storageError("delete record", err)
	}
	return nil
}

// SaveProfile inserts p or replaces the stored profile with the same name.
// A missing ProfileID is assigned before writing.
func (s *Store) SaveProfile(ctx context.Context, p *types.Profile) error {
	if p.ProfileID == "" {
		p.ProfileID = types.NewProfileID()
	}
	mode := p.Mode
	if mode == "" {
		mode = types.ModeStrict
	}
	expression, err := json.Marshal(p.Conditions)
	if err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}

	now := time.Now().UnixNano()
	if _, err := s.queries.Exec(ctx, s.db, "upsert-profile",
		string(p.ProfileID), p.Name, p.Description, mode, string(expression), now, now,
	); err != nil {
		return storageError("save profile", err)
	}
	return nil
}

// GetProfileByName returns the stored profile, or types.ErrProfileNotFound.
func (s *Store) GetProfileByName(ctx context.Context, name string) (*types.Profile, error) {
	var row profileRow
	if err := s.queries.Get(ctx, &row, "get-profile-by-name", name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%q: %w", name, types.ErrProfileNotFound)
		}
		return nil, storageError("get profile", err)
	}
	return row.profile()
}

// ListProfiles returns every stored profile ordered by name.
func (s *Store) ListProfiles(ctx context.Context) ([]*types.Profile, error) {
	var rows []profileRow
	if err := s.queries.Select(ctx, &rows, "list-profiles"); err != nil {
		return nil, storageError("list profiles", err)
	}
	out := make([]*types.Profile, 0, len(rows))
	for _, row := range rows {
		p, err := row.profile()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// DeleteProfile removes a stored profile by name.
func (s *Store) DeleteProfile(ctx context.Context, name string) error {
	res, err := s.queries.Exec(ctx, s.db, "delete-profile", name)
	if err != nil {
		return storageError("delete profile", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%q: %w", name, types.ErrProfileNotFound)
	}
	return nil
}

func (r profileRow) profile() (*types.Profile, error) {
	// json.Number keeps integer operands integral for the schema coercion.
	dec := json.NewDecoder(bytes.NewReader([]byte(r.Expression)))
	dec.UseNumber()
	var conditions []types.Expr
	if err := dec.Decode(&conditions); err != nil {
		return nil, fmt.Errorf("profile %s expression: %w", r.Name, err)
	}
	return &types.Profile{
		ProfileID:   types.ProfileID(r.ProfileID),
		Name:        r.Name,
		Description: r.Description,
		Mode:        r.Mode,
		Conditions:  conditions,
	}, nil
}
