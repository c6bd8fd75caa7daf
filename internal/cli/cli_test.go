package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorascalyr/jarvis-coding/internal/taxonomy"
)

func TestCommandsRegistered(t *testing.T) {
	require.NotNil(t, rootCmd)

	expected := map[string]bool{
		"validate": false,
		"products": false,
		"generate": false,
	}
	for _, cmd := range rootCmd.Commands() {
		for key := range expected {
			if strings.HasPrefix(cmd.Use, key) {
				expected[key] = true
			}
		}
	}
	for name, found := range expected {
		assert.True(t, found, "command %s should be registered", name)
	}
}

func TestSelectProducts(t *testing.T) {
	registry, err := taxonomy.Load("")
	require.NoError(t, err)

	t.Run("empty selects all", func(t *testing.T) {
		products, err := selectProducts(registry, "")
		require.NoError(t, err)
		assert.Equal(t, registry.Len(), len(products))
	})

	t.Run("subset with whitespace", func(t *testing.T) {
		products, err := selectProducts(registry, " okta_authentication , cisco_asa ")
		require.NoError(t, err)
		require.Len(t, products, 2)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := selectProducts(registry, "no_such_product")
		assert.Error(t, err)
	})
}
