package pdfattach

import (
	"bytes"
	"context"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attachment struct {
	name    string
	payload []byte
}

// buildDoc writes a minimal document embedding the given attachments.
func buildDoc(t *testing.T, attachments ...attachment) []byte {
	t.Helper()
	ctx, err := pdfcpu.CreateContextWithXRefTable(model.NewDefaultConfiguration(), types.PaperSize["A4"])
	require.NoError(t, err)
	for _, a := range attachments {
		att := model.Attachment{Reader: bytes.NewReader(a.payload), ID: a.name}
		require.NoError(t, ctx.AddAttachment(att, false))
	}
	var buf bytes.Buffer
	require.NoError(t, api.WriteContext(ctx, &buf))
	return buf.Bytes()
}

func TestRankCandidates(t *testing.T) {
	tests := []struct {
		name       string
		cands      []candidate
		attachment string
		wantFirst  []string
	}{
		{
			name: "case-insensitive match sorts first",
			cands: []candidate{
				{names: []string{"readme.txt"}},
				{names: []string{"HIDUSAGETABLES.JSON"}},
			},
			attachment: "HidUsageTables.json",
			wantFirst:  []string{"HIDUSAGETABLES.JSON"},
		},
		{
			name: "no match keeps document order",
			cands: []candidate{
				{names: []string{"first.bin"}},
				{names: []string{"second.bin"}},
			},
			attachment: "HidUsageTables.json",
			wantFirst:  []string{"first.bin"},
		},
		{
			name: "match on secondary declared name",
			cands: []candidate{
				{names: []string{"other.json"}},
				{names: []string{"attachment-key", "hidusagetables.json"}},
			},
			attachment: "HidUsageTables.json",
			wantFirst:  []string{"attachment-key", "hidusagetables.json"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rankCandidates(tt.cands, tt.attachment)
			assert.Equal(t, tt.wantFirst, tt.cands[0].names)
		})
	}
}

func TestMatchesName(t *testing.T) {
	c := candidate{names: []string{"HidUsageTables.json"}}
	assert.True(t, matchesName(c, "hidusagetables.JSON"))
	assert.False(t, matchesName(c, "other.json"))
	// An empty desired name never matches; the first entry wins instead.
	assert.False(t, matchesName(c, ""))
}

func TestExtractRoundTrip(t *testing.T) {
	tables := []byte(`{"usagePages":[{"id":1,"name":"Generic Desktop"}]}`)
	doc := buildDoc(t, attachment{name: "HidUsageTables.json", payload: tables})

	tests := []struct {
		name       string
		attachment string
	}{
		{name: "exact name", attachment: "HidUsageTables.json"},
		{name: "case-insensitive name", attachment: "hidusagetables.JSON"},
		{name: "no match falls back to first entry", attachment: "other.bin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(context.Background(), doc, tt.attachment)
			require.NoError(t, err)
			assert.Equal(t, tables, got)
		})
	}
}

func TestExtractPrefersMatchingAttachment(t *testing.T) {
	readme := []byte("plain text")
	tables := []byte(`{"usagePages":[]}`)
	doc := buildDoc(t,
		attachment{name: "readme.txt", payload: readme},
		attachment{name: "HidUsageTables.json", payload: tables},
	)

	got, err := Extract(context.Background(), doc, "hidusagetables.json")
	require.NoError(t, err)
	assert.Equal(t, tables, got)
}

func TestExtractNoEmbeddedFiles(t *testing.T) {
	doc := buildDoc(t)
	_, err := Extract(context.Background(), doc, "HidUsageTables.json")
	assert.ErrorIs(t, err, ErrAttachmentNotFound)
}

func TestExtractRejectsMalformedDocument(t *testing.T) {
	_, err := Extract(context.Background(), []byte("definitely not a pdf"), "tables.json")
	assert.Error(t, err)
}

func TestExtractCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Extract(ctx, []byte("%PDF-1.7"), "tables.json")
	assert.ErrorIs(t, err, context.Canceled)
}
