package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/genieplot"
)

func testResults() []genieplot.Result {
	events := []genieplot.Event{
		{ChargedCurrent: true, LeptonPDG: genieplot.PDGMuon, NProton: 1},
		{ChargedCurrent: true, LeptonPDG: genieplot.PDGMuon},
		{ChargedCurrent: true, LeptonPDG: genieplot.PDGMuon},
		{NeutralCurrent: true, LeptonPDG: genieplot.PDGNuMu, NPi0: 1},
	}
	const scale = 2.5
	return []genieplot.Result{
		{
			Configuration:  genieplot.Configuration{Name: "G17_02b"},
			Events:         events,
			Scale:          scale,
			Classification: genieplot.Classify(events, scale),
			Particles:      genieplot.CountParticles(events),
		},
		{
			Configuration: genieplot.Configuration{Name: "Default", Label: "Default + MEC"},
			Err:           errors.New("open samples/Default+MEC: no such file"),
		},
	}
}

func TestFormatCount(t *testing.T) {
	tests := map[float64]string{
		0:        "0",
		7:        "7",
		2.5:      "2.5",
		1.0 / 3:  "0.33333",
		123456:   "1.2346e+05",
		98765.43: "98765",
	}
	for v, want := range tests {
		assert.Equal(t, want, formatCount(v), "%v", v)
	}
}

func TestColumns(t *testing.T) {
	results := testResults()

	scaled := ScaledColumns(results)
	require.Len(t, scaled, 1)
	assert.Equal(t, "G17_02b", scaled[0].Label)
	assert.Equal(t, 7.0, scaled[0].Counts[genieplot.CC][genieplot.ZeroPi])
	assert.Equal(t, 2.0, scaled[0].Counts[genieplot.NC][genieplot.OnePi0])

	raw := RawColumns(results)
	require.Len(t, raw, 1)
	assert.Equal(t, 3.0, raw[0].Counts[genieplot.CC][genieplot.ZeroPi])
	assert.Equal(t, 1.0, raw[0].Counts[genieplot.NC][genieplot.OnePi0])
}

func TestWriteTable(t *testing.T) {
	cols := []Column{
		{Label: "G17_02b"},
		{Label: "Default"},
	}
	cols[0].Counts[genieplot.CC][genieplot.ZeroPi] = 7
	cols[1].Counts[genieplot.CC][genieplot.ZeroPi] = 123456

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, cols))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "\\begin{longtable}{| l || * {2}{c | } }\n"))
	assert.True(t, strings.HasSuffix(out, "\\end{longtable}\n"))
	assert.Contains(t, out, `\multicolumn{ 2 }{c|}{ \textbf{ Model Configurations } }`)
	assert.Contains(t, out, `\rotatebox{90}{ \textbf{ G17\_02b } } & \rotatebox{90}{ \textbf{ Default } }`)
	assert.Contains(t, out, "0 \\( \\pi \\) & 7 & 1.2346e+05 \\\\ \n")
	assert.Contains(t, out, "Coherent & 0 & 0 \\\\ \n")

	cc := strings.Index(out, `\textit{ Charged Current }`)
	nc := strings.Index(out, `\textit{ Neutral Current }`)
	require.NotEqual(t, -1, cc)
	require.NotEqual(t, -1, nc)
	assert.Less(t, cc, nc)

	rows := strings.Count(out, " \\\\ \n")
	assert.Equal(t, 2*int(genieplot.NumFinalStates)+2, rows)

	assert.Error(t, WriteTable(&buf, nil))
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, testResults()))
	out := buf.String()

	assert.Contains(t, out, " G17_02b \n")
	assert.Contains(t, out, " normalization : 2.5\n")
	assert.Contains(t, out, " CC0Pi    : 7.5\n")
	assert.Contains(t, out, " CC0Pi    : 3\n")
	assert.Contains(t, out, " NC1Pi0   : 2.5\n")
	assert.Contains(t, out, " NC1Pi0   : 1\n")
	assert.Contains(t, out, " CCCOH    : 0\n")
	assert.Contains(t, out, " Muons          : 3\n")
	assert.Contains(t, out, " Muon Neutrinos : 1\n")
	assert.Contains(t, out, " Protons        : 1\n")

	assert.Contains(t, out, " Default + MEC \n failed: open samples/Default+MEC: no such file\n")

	sbnd := strings.Index(out, "-----------SBND----------")
	mc := strings.Index(out, "------------MC-----------")
	assert.Less(t, sbnd, mc)
}

func TestWritePDF(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "summary.pdf")
	require.NoError(t, WritePDF(path, testResults(), nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	failed := testResults()[1:]
	path = filepath.Join(dir, "failed.pdf")
	require.NoError(t, WritePDF(path, failed, nil))
	assert.FileExists(t, path)
}
