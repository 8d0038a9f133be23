package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/languageclub/internal/auth"
)

func TestMintToken(t *testing.T) {
	t.Setenv("ACCESS_SECRET_TOKEN", "cli-secret")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"mint-token", "--email", "ops@x.io"})
	t.Cleanup(func() { mintEmail = "" })

	require.NoError(t, rootCmd.Execute())

	id, err := auth.NewVerifier("cli-secret").Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "ops@x.io", id.Email())
}

func TestMintToken_RequiresEmail(t *testing.T) {
	t.Setenv("ACCESS_SECRET_TOKEN", "cli-secret")
	rootCmd.SetArgs([]string{"mint-token"})
	assert.Error(t, rootCmd.Execute())
}
