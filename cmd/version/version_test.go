package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	VersionCmd.SetOut(&out)
	VersionCmd.SetArgs([]string{})
	require.NoError(t, VersionCmd.Execute())
	require.Equal(t, "huf version "+Version+"\n", out.String())
}
