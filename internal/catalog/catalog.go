// Package catalog reads font catalogs and filter profiles from YAML files and
// serves them from memory.
//
// Catalog format:
//
//	records:
//	  - id: 0190f5c2-...            # optional, a UUIDv7 is assigned otherwise
//	    attributes:
//	      family: [DejaVu Sans, DejaVu]   # a sequence gives several values...
//	      charset: "abcdef"               # ...except for set, range and matrix kinds
//	      weight: bold                    # symbolic constants resolve per attribute
//	      size: {kind: range, value: [6, 72]}
//
// Profile files hold one profile, or a "profiles" sequence.
package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/solatis/fontfilter/internal/records"
	"github.com/solatis/fontfilter/internal/types"
	"gopkg.in/yaml.v3"
)

type recordDoc struct {
	ID         string         `yaml:"id"`
	Attributes map[string]any `yaml:"attributes"`
}

type catalogDoc struct {
	Records []recordDoc `yaml:"records"`
}

type profilesDoc struct {
	Profiles []types.Profile `yaml:"profiles"`
}

// DecodeRecords parses a YAML catalog into an unaccounted record set.
func DecodeRecords(r io.Reader, schema *records.Schema) (*records.Set, error) {
	if schema == nil {
		schema = records.DefaultSchema()
	}
	var doc catalogDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return records.NewSetOf(), nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make([]records.Record, 0, len(doc.Records))
	for i, rd := range doc.Records {
		p, err := decodeRecord(rd, schema)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, p)
	}
	return records.NewSetOf(out...), nil
}

func decodeRecord(rd recordDoc, schema *records.Schema) (*records.Pattern, error) {
	var id types.RecordID
	if rd.ID != "" {
		parsed, err := types.ParseRecordID(rd.ID)
		if err != nil {
			return nil, fmt.Errorf("id %q: %w", rd.ID, err)
		}
		id = parsed
	}
	p := records.NewPattern(id)

	// YAML mappings are unordered; sort for a stable attribute order.
	names := make([]string, 0, len(rd.Attributes))
	for name := range rd.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		values, err := decodeAttribute(name, rd.Attributes[name], schema)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		for _, v := range values {
			p.Add(name, v)
		}
	}
	return p, nil
}

func decodeAttribute(name string, raw any, schema *records.Schema) ([]records.Value, error) {
	if m, ok := raw.(map[string]any); ok {
		kind, _ := m["kind"].(string)
		if kind == "" {
			return nil, fmt.Errorf("typed value needs a kind")
		}
		v, err := schema.Operand(name, kind, m["value"])
		if err != nil {
			return nil, err
		}
		return []records.Value{v}, nil
	}

	if seq, ok := raw.([]any); ok && !takesSequence(schema, name) {
		out := make([]records.Value, 0, len(seq))
		for _, elem := range seq {
			v, err := schema.Operand(name, "", elem)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	v, err := schema.Operand(name, "", raw)
	if err != nil {
		return nil, err
	}
	return []records.Value{v}, nil
}

// takesSequence reports whether a single value of the attribute is written as
// a YAML sequence.
func takesSequence(schema *records.Schema, name string) bool {
	kind, ok := schema.Kind(name)
	if !ok {
		return false
	}
	switch kind {
	case records.KindCharSet, records.KindLangSet, records.KindRange, records.KindMatrix:
		return true
	default:
		return false
	}
}

// DecodeProfiles parses one profile document or a "profiles" sequence.
func DecodeProfiles(r io.Reader) ([]*types.Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	var many profilesDoc
	if err := yaml.Unmarshal(data, &many); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	if len(many.Profiles) > 0 {
		out := make([]*types.Profile, 0, len(many.Profiles))
		for i := range many.Profiles {
			out = append(out, &many.Profiles[i])
		}
		return out, nil
	}

	var one types.Profile
	if err := yaml.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if one.Name == "" && len(one.Conditions) == 0 {
		return nil, fmt.Errorf("no profile found: %w", types.ErrEmptyExpression)
	}
	return []*types.Profile{&one}, nil
}

// LoadRecordsFile reads a YAML catalog from path.
func LoadRecordsFile(path string, schema *records.Schema) (*records.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeRecords(f, schema)
}

// LoadProfilesFile reads YAML profiles from path.
func LoadProfilesFile(path string) ([]*types.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeProfiles(f)
}

// Static serves a fixed record set and profile collection from memory.
// It is safe for concurrent readers.
type Static struct {
	set      *records.Set
	profiles map[string]*types.Profile
}

// NewStatic wraps set and profiles. Later profiles replace earlier ones with
// the same name.
func NewStatic(set *records.Set, profiles ...*types.Profile) *Static {
	if set == nil {
		set = records.NewSetOf()
	}
	s := &Static{set: set, profiles: make(map[string]*types.Profile, len(profiles))}
	for _, p := range profiles {
		s.profiles[p.Name] = p
	}
	return s
}

// LoadRecords returns the fixed set. Callers must not release it.
func (s *Static) LoadRecords(ctx context.Context) (*records.Set, error) {
	return s.set, nil
}

// GetProfileByName returns the named profile or types.ErrProfileNotFound.
func (s *Static) GetProfileByName(ctx context.Context, name string) (*types.Profile, error) {
	p, ok := s.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, types.ErrProfileNotFound)
	}
	return p, nil
}

// ListProfiles returns the profiles ordered by name.
func (s *Static) ListProfiles(ctx context.Context) ([]*types.Profile, error) {
	out := make([]*types.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
