package osutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserCommand(t *testing.T) {
	const url = "http://192.168.1.20:8000/"

	name, args, err := browserCommand("darwin", url)
	require.NoError(t, err)
	assert.Equal(t, "open", name)
	assert.Equal(t, []string{url}, args)

	name, args, err = browserCommand("windows", url)
	require.NoError(t, err)
	assert.Equal(t, "rundll32", name)
	assert.Equal(t, []string{"url.dll,FileProtocolHandler", url}, args)

	name, _, err = browserCommand("linux", url)
	require.NoError(t, err)
	assert.Equal(t, "xdg-open", name)

	_, _, err = browserCommand("plan9", url)
	assert.Error(t, err)
}
