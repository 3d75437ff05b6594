package genieplot

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayFlags(t *testing.T) {
	only := StringArrayFlags{Array: []string{"Default"}}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&only, "only", "")

	require.NoError(t, fs.Parse([]string{"-only", "G17_01a", "-only", "Default+MEC, G17_02b"}))
	assert.Equal(t, []string{"G17_01a", "Default+MEC", "G17_02b"}, only.Array)
	assert.Equal(t, "G17_01a,Default+MEC,G17_02b", only.String())

	assert.Error(t, only.Set(" "))
}

func TestStringArrayFlagsDefault(t *testing.T) {
	only := StringArrayFlags{Array: []string{"Default"}}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&only, "only", "")

	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, []string{"Default"}, only.Array)
}
