package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/solatis/fontfilter/internal/filter"
	"github.com/solatis/fontfilter/internal/records"
	"github.com/solatis/fontfilter/internal/types"
	"google.golang.org/protobuf/types/known/structpb"
)

// filterRequest is the Filter request document:
//
//	{"profile": "name"}                                  stored profile
//	{"profile": "name", "mode": "soft"}                  with mode override
//	{"name": "x", "mode": "soft", "conditions": [...]}   inline expressions
//
// "limit" caps the number of records returned (0 returns all).
type filterRequest struct {
	Profile    string       `json:"profile"`
	Name       string       `json:"name"`
	Mode       string       `json:"mode"`
	Conditions []types.Expr `json:"conditions"`
	Limit      int          `json:"limit"`
}

func decodeFilterRequest(in *structpb.Struct) (filterRequest, error) {
	var fr filterRequest
	if in == nil {
		return fr, types.ErrEmptyExpression
	}
	data, err := in.MarshalJSON()
	if err != nil {
		return fr, fmt.Errorf("encode request: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&fr); err != nil {
		return fr, fmt.Errorf("decode request: %v: %w", err, types.ErrInvalidExpression)
	}
	if fr.Limit < 0 {
		return fr, fmt.Errorf("negative limit %d: %w", fr.Limit, types.ErrInvalidExpression)
	}
	return fr, nil
}

// encodeResult renders the kept records and, for soft mode, the steps taken.
func encodeResult(res filter.Result, limit int) (*structpb.Struct, error) {
	kept := res.Set.Records()
	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}

	recs := make([]any, 0, len(kept))
	for _, r := range kept {
		recs = append(recs, encodeRecord(r))
	}

	out := map[string]any{
		"profile": res.Profile,
		"mode":    res.Mode,
		"count":   res.Set.Len(),
		"records": recs,
	}
	if res.Mode == types.ModeSoft {
		steps := make([]any, 0, len(res.Steps))
		for _, st := range res.Steps {
			steps = append(steps, map[string]any{
				"index":     st.Index,
				"condition": st.Condition,
				"before":    st.Before,
				"after":     st.After,
				"applied":   st.Applied,
			})
		}
		out["steps"] = steps
	}
	return structpb.NewStruct(out)
}

func encodeRecord(r records.Record) map[string]any {
	p, ok := r.(*records.Pattern)
	if !ok {
		return map[string]any{}
	}
	attrs := make(map[string]any)
	for _, name := range p.Attributes() {
		v, _ := p.Get(name)
		raw, err := v.Raw()
		if err != nil {
			// face handles stay in-process
			continue
		}
		attrs[name] = raw
	}
	return map[string]any{
		"id":         string(p.ID()),
		"name":       p.Name(),
		"attributes": attrs,
	}
}

func encodeProfiles(profiles []*types.Profile) (*structpb.Struct, error) {
	list := make([]any, 0, len(profiles))
	for _, p := range profiles {
		mode := p.Mode
		if mode == "" {
			mode = types.ModeStrict
		}
		list = append(list, map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"mode":        mode,
			"conditions":  len(p.Conditions),
		})
	}
	return structpb.NewStruct(map[string]any{"profiles": list})
}
