package api

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/solatis/fontfilter/internal/alloc"
	"github.com/solatis/fontfilter/internal/catalog"
	"github.com/solatis/fontfilter/internal/core/config"
	"github.com/solatis/fontfilter/internal/filter"
	"github.com/solatis/fontfilter/internal/records"
	"github.com/solatis/fontfilter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func testCatalog() *catalog.Static {
	font := func(family, style string, weight, slant int64) *records.Pattern {
		return records.NewPattern("").
			Add(records.AttrFamily, records.Text(family)).
			Add(records.AttrStyle, records.Text(style)).
			Add(records.AttrWeight, records.Int(weight)).
			Add(records.AttrSlant, records.Int(slant))
	}
	set := records.NewSetOf(
		font("Sans", "Bold", records.WeightBold, records.SlantRoman),
		font("Sans", "Italic", records.WeightRegular, records.SlantItalic),
		font("Sans", "Bold Italic", records.WeightBold, records.SlantItalic),
	)
	return catalog.NewStatic(set,
		&types.Profile{
			Name: "bold",
			Conditions: []types.Expr{
				{Attribute: "weight", Value: "bold"},
			},
		},
		&types.Profile{
			Name:        "black-italic",
			Description: "heaviest italic available",
			Mode:        types.ModeSoft,
			Conditions: []types.Expr{
				{Attribute: "weight", Value: "black"},
				{Attribute: "slant", Value: "italic"},
			},
		},
	)
}

func newTestService(t *testing.T, engine *filter.Engine) *FilterService {
	t.Helper()
	static := testCatalog()
	if engine == nil {
		engine = filter.NewEngine()
	}
	svc, err := NewFilterService(engine, static, static, config.DefaultConfig(), nil)
	require.NoError(t, err)
	return svc
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func recordNames(t *testing.T, resp *structpb.Struct) []string {
	t.Helper()
	var out []string
	for _, v := range resp.Fields["records"].GetListValue().GetValues() {
		out = append(out, v.GetStructValue().Fields["name"].GetStringValue())
	}
	return out
}

func TestNewFilterService_NilDependencies(t *testing.T) {
	static := testCatalog()
	cfg := config.DefaultConfig()
	engine := filter.NewEngine()

	_, err := NewFilterService(nil, static, static, cfg, nil)
	assert.Error(t, err)
	_, err = NewFilterService(engine, nil, static, cfg, nil)
	assert.Error(t, err)
	_, err = NewFilterService(engine, static, nil, cfg, nil)
	assert.Error(t, err)
	_, err = NewFilterService(engine, static, static, nil, nil)
	assert.Error(t, err)
}

func TestFilter_StoredProfile(t *testing.T) {
	svc := newTestService(t, nil)

	resp, err := svc.Filter(context.Background(), mustStruct(t, map[string]any{"profile": "bold"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sans Bold", "Sans Bold Italic"}, recordNames(t, resp))
	assert.Equal(t, "strict", resp.Fields["mode"].GetStringValue())
	assert.EqualValues(t, 2, resp.Fields["count"].GetNumberValue())
	assert.Nil(t, resp.Fields["steps"])
}

func TestFilter_SoftProfileReportsSteps(t *testing.T) {
	svc := newTestService(t, nil)

	resp, err := svc.Filter(context.Background(), mustStruct(t, map[string]any{"profile": "black-italic"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sans Italic", "Sans Bold Italic"}, recordNames(t, resp))

	steps := resp.Fields["steps"].GetListValue().GetValues()
	require.Len(t, steps, 2)
	assert.False(t, steps[0].GetStructValue().Fields["applied"].GetBoolValue())
	assert.True(t, steps[1].GetStructValue().Fields["applied"].GetBoolValue())
}

func TestFilter_ModeOverride(t *testing.T) {
	svc := newTestService(t, nil)

	resp, err := svc.Filter(context.Background(), mustStruct(t, map[string]any{
		"profile": "black-italic",
		"mode":    "strict",
	}))
	require.NoError(t, err)
	assert.Empty(t, recordNames(t, resp))
}

func TestFilter_InlineConditions(t *testing.T) {
	svc := newTestService(t, nil)

	resp, err := svc.Filter(context.Background(), mustStruct(t, map[string]any{
		"name": "bold-and-italic",
		"conditions": []any{
			map[string]any{
				"logic": "and",
				"left":  map[string]any{"attribute": "weight", "op": ">=", "value": 200},
				"right": map[string]any{"attribute": "slant", "value": "italic"},
			},
		},
		"limit": 1,
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sans Bold Italic"}, recordNames(t, resp))
	assert.Equal(t, "bold-and-italic", resp.Fields["profile"].GetStringValue())

	attrs := resp.Fields["records"].GetListValue().GetValues()[0].GetStructValue().Fields["attributes"].GetStructValue()
	assert.EqualValues(t, 200, attrs.Fields["weight"].GetNumberValue())
}

func TestFilter_ErrorCodes(t *testing.T) {
	tests := []struct {
		name     string
		engine   *filter.Engine
		req      map[string]any
		wantCode codes.Code
	}{
		{"unknown profile", nil, map[string]any{"profile": "nope"}, codes.NotFound},
		{"empty request", nil, map[string]any{}, codes.InvalidArgument},
		{"bad operator", nil, map[string]any{"conditions": []any{
			map[string]any{"attribute": "weight", "op": "~", "value": 1},
		}}, codes.InvalidArgument},
		{"bad mode", nil, map[string]any{"profile": "bold", "mode": "fuzzy"}, codes.InvalidArgument},
		{"profile and conditions", nil, map[string]any{
			"profile":    "bold",
			"conditions": []any{map[string]any{"attribute": "weight", "value": 1}},
		}, codes.InvalidArgument},
		{"allocation refused", filter.NewEngine(
			filter.WithSets(records.NewSetAllocator(alloc.NewBudget(1), 0)),
		), map[string]any{"profile": "bold"}, codes.ResourceExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.engine)
			_, err := svc.Filter(context.Background(), mustStruct(t, tt.req))
			assert.Equal(t, tt.wantCode, status.Code(err), "%v", err)
		})
	}
}

func TestListProfiles(t *testing.T) {
	svc := newTestService(t, nil)

	resp, err := svc.ListProfiles(context.Background(), &structpb.Struct{})
	require.NoError(t, err)

	profiles := resp.Fields["profiles"].GetListValue().GetValues()
	require.Len(t, profiles, 2)
	first := profiles[0].GetStructValue().Fields
	assert.Equal(t, "black-italic", first["name"].GetStringValue())
	assert.Equal(t, "soft", first["mode"].GetStringValue())
	assert.EqualValues(t, 2, first["conditions"].GetNumberValue())
}

func TestFilterService_OverGRPC(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(LoggingInterceptor(logger)))
	RegisterFilterServer(srv, newTestService(t, nil))
	go srv.Serve(lis)
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := NewClient(conn)

	resp, err := client.Filter(ctx, mustStruct(t, map[string]any{"profile": "bold"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sans Bold", "Sans Bold Italic"}, recordNames(t, resp))

	_, err = client.Filter(ctx, mustStruct(t, map[string]any{"profile": "missing"}))
	assert.Equal(t, codes.NotFound, status.Code(err))

	list, err := client.ListProfiles(ctx, &structpb.Struct{})
	require.NoError(t, err)
	assert.Len(t, list.Fields["profiles"].GetListValue().GetValues(), 2)

	assert.Contains(t, logs.String(), FilterMethod)
	assert.Contains(t, logs.String(), `"code":"NotFound"`)
}
