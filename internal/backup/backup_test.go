package backup

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/komorebi/internal/day"
	"github.com/verte-zerg/komorebi/internal/model"
	"github.com/verte-zerg/komorebi/internal/protocol"
	"github.com/verte-zerg/komorebi/internal/store"
)

func seed(t *testing.T) *store.Memory {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemory()
	ns := store.NS("")

	cfg := protocol.Default()
	cfg.Protocols[0].Cards[0].Details = []string{"<60 min screens & lights>"}
	require.NoError(t, protocol.NewRepo(kv, ns, nil).Save(ctx, cfg))
	days := day.NewRepo(kv, ns, nil)
	require.NoError(t, days.Save(ctx, model.NewDay("2024-05-01").Toggle("s1").SetNote("tired")))
	require.NoError(t, days.Save(ctx, model.NewDay("2024-05-02").Toggle("dw1")))
	require.NoError(t, kv.Set(ctx, ns.APIKey(), "AIza-secret"))
	require.NoError(t, kv.Set(ctx, "komorebi_weird", `"quoted"`))
	require.NoError(t, kv.Set(ctx, "komorebi_nothing", "null"))
	require.NoError(t, kv.Set(ctx, "unrelated", "x"))
	return kv
}

func dump(t *testing.T, kv store.KV, prefix string) map[string]string {
	t.Helper()
	ctx := context.Background()
	keys, err := store.KeysWithPrefix(ctx, kv, prefix)
	require.NoError(t, err)
	out := map[string]string{}
	for _, k := range keys {
		v, _, err := kv.Get(ctx, k)
		require.NoError(t, err)
		out[k] = v
	}
	return out
}

func TestExportShape(t *testing.T) {
	kv := seed(t)
	data, err := Export(context.Background(), kv, store.NS(""), FormatJSON)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.NotContains(t, doc, "unrelated")
	assert.Equal(t, "AIza-secret", doc["komorebi_gemini_key"])
	assert.Equal(t, `"quoted"`, doc["komorebi_weird"])
	assert.Contains(t, doc, "komorebi_nothing")
	assert.Nil(t, doc["komorebi_nothing"])
	dayDoc, ok := doc["komorebi_day_2024-05-01"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tired", dayDoc["note"])
	_, ok = doc["komorebi_config_v1"].(map[string]any)
	assert.True(t, ok)
}

func TestJSONRoundTripIsExact(t *testing.T) {
	ctx := context.Background()
	src := seed(t)
	data, err := Export(ctx, src, store.NS(""), FormatJSON)
	require.NoError(t, err)

	dst := store.NewMemory()
	n, err := Import(ctx, dst, data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	if diff := cmp.Diff(dump(t, src, "komorebi_"), dump(t, dst, "")); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLRoundTripPreservesRecords(t *testing.T) {
	ctx := context.Background()
	src := seed(t)
	ns := store.NS("")
	data, err := Export(ctx, src, ns, FormatYAML)
	require.NoError(t, err)

	dst := store.NewMemory()
	_, err = Import(ctx, dst, data, FormatYAML)
	require.NoError(t, err)

	wantCfg, err := protocol.NewRepo(src, ns, nil).Load(ctx)
	require.NoError(t, err)
	gotCfg, err := protocol.NewRepo(dst, ns, nil).Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(wantCfg, gotCfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	wantHist, err := day.BuildHistory(ctx, src, ns, nil)
	require.NoError(t, err)
	gotHist, err := day.BuildHistory(ctx, dst, ns, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(wantHist, gotHist); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}

	key, _, err := dst.Get(ctx, ns.APIKey())
	require.NoError(t, err)
	assert.Equal(t, "AIza-secret", key)
}

func TestImportInvalidWritesNothing(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	for _, data := range []string{`{"komorebi_a": 1,`, `[1,2]`, `null`, `"str"`} {
		_, err := Import(ctx, kv, []byte(data), FormatJSON)
		assert.ErrorIs(t, err, ErrInvalidBackup, "data %s", data)
	}
	_, err := Import(ctx, kv, []byte("- a\n- b\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidBackup)

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestImportWritesStringsVerbatim(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	_, err := Import(ctx, kv, []byte(`{"k1":"plain","k2":{"b": [1, 2]}}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"k1": "plain", "k2": `{"b":[1,2]}`}, dump(t, kv, ""))
}

func TestImportKeepsNullLiteral(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	_, err := Import(ctx, kv, []byte(`{"k1":null,"k2":"null","k3":""}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"k1": "null", "k2": "null", "k3": ""}, dump(t, kv, ""))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
