package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EJPOP/trade-system/internal/model"
)

func TestExtractRecords_EnvelopeVariants(t *testing.T) {
	records := `[{"ISU_CD":"005930","TDD_CLSPRC":"71,200"},{"ISU_CD":"000660"}]`

	tests := []struct {
		name string
		text string
	}{
		{"OutBlock_1", `{"OutBlock_1":` + records + `}`},
		{"OUTBLOCK_1", `{"OUTBLOCK_1":` + records + `}`},
		{"outBlock1", `{"outBlock1":` + records + `}`},
		{"out_block1", `{"out_block1":` + records + `}`},
		{"output", `{"output":` + records + `}`},
		{"result", `{"result":` + records + `}`},
		{"data", `{"data":` + records + `}`},
		{"bare array root", records},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractRecords(tt.text, "/sto/stk_bydd_trd", `{"basDd":"20260119"}`)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "005930", got[0].Get("ISU_CD"))
			assert.Equal(t, "71,200", got[0].Get("TDD_CLSPRC"))
			assert.Equal(t, "000660", got[1].Get("ISU_CD"))
		})
	}
}

func TestExtractRecords_CandidateBeatsFirstArray(t *testing.T) {
	// "output" is a known envelope key; the earlier unknown array must lose.
	text := `{"errors":[{"msg":"x"}],"output":[{"ISU_CD":"005930"}]}`

	got, err := extractRecords(text, "/p", "{}")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "005930", got[0].Get("ISU_CD"))
}

func TestExtractRecords_FirstArrayFallback(t *testing.T) {
	// No candidate key present: the first array field in declaration order
	// wins, not the later one.
	text := `{"meta":"v1","rows":[{"ISU_CD":"005930"}],"trailer":[{"ISU_CD":"999999"}]}`

	got, err := extractRecords(text, "/p", "{}")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "005930", got[0].Get("ISU_CD"))
}

func TestExtractRecords_EmptyEnvelope(t *testing.T) {
	got, err := extractRecords(`{"OutBlock_1":[]}`, "/p", "{}")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractRecords_StructureError(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		rootType string
	}{
		{"object without arrays", `{"message":"no data"}`, "OBJECT"},
		{"string root", `"oops"`, "STRING"},
		{"number root", `42`, "NUMBER"},
		{"boolean root", `true`, "BOOLEAN"},
		{"null root", `null`, "NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractRecords(tt.text, "/sto/stk_bydd_trd", `{"basDd":"20260119"}`)
			var se *StructureError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.rootType, se.RootType)
			assert.Equal(t, "/sto/stk_bydd_trd", se.Path)
			assert.Equal(t, `{"basDd":"20260119"}`, se.Body)
		})
	}
}

func TestExtractRecords_ParseError(t *testing.T) {
	text := `<html><body>Service Temporarily Unavailable</body></html>`

	_, err := extractRecords(text, "/sto/stk_bydd_trd", `{"basDd":"20260119"}`)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "/sto/stk_bydd_trd", pe.Path)
	assert.Equal(t, text, pe.Head)
	assert.Error(t, errors.Unwrap(pe))
}

func TestExtractRecords_ParseErrorHeadTruncated(t *testing.T) {
	long := "not json " + string(make([]byte, 2*parseErrorHeadLen))

	_, err := extractRecords(long, "/p", "{}")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Len(t, pe.Head, parseErrorHeadLen)
}

func TestExtractRecords_ScalarCoercion(t *testing.T) {
	text := `{"OutBlock_1":[{"ISU_CD":"005930","TDD_CLSPRC":71200,"FLUC_RT":-0.56,"SECT_TP_NM":null}]}`

	got, err := extractRecords(text, "/p", "{}")
	require.NoError(t, err)
	require.Len(t, got, 1)

	rec := got[0]
	assert.Equal(t, model.RawRecord{
		"ISU_CD":     "005930",
		"TDD_CLSPRC": "71200",
		"FLUC_RT":    "-0.56",
		"SECT_TP_NM": "",
	}, rec)
}
