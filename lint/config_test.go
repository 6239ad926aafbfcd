package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnolang/depwarn/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissing(t *testing.T) {
	t.Parallel()
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, config)
}

func TestLoadConfigYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".depwarn.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: realm
output:
  deprecations: deprecations.log
rules:
  - package: std
    type: Banker
    function: SendCoins
    alternative: Banker.Send
`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "realm", config.Name)
	assert.Equal(t, "deprecations.log", config.Output.Deprecations)
	assert.Equal(t, []types.DeprecationRule{
		{Package: "std", Type: "Banker", Function: "SendCoins", Alternative: "Banker.Send"},
	}, config.Rules)
}

func TestLoadConfigTOML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "depwarn.toml")
	require.NoError(t, os.WriteFile(path, []byte(`name = "realm"

[output]
deprecations = "deprecations.log"

[ignore]
paths = ["vendor/"]

[[rules]]
package = "std"
function = "GetHeight"
alternative = "std.ChainHeight"
`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "realm", config.Name)
	assert.Equal(t, "deprecations.log", config.Output.Deprecations)
	assert.Equal(t, []string{"vendor/"}, config.Ignore.Paths)
	assert.Equal(t, []types.DeprecationRule{
		{Package: "std", Function: "GetHeight", Alternative: "std.ChainHeight"},
	}, config.Rules)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [unterminated"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestWriteConfigRoundTrip(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"depwarn.yaml", "depwarn.toml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, WriteConfig(path, DefaultConfig()))

		config, err := LoadConfig(path)
		require.NoError(t, err, name)
		assert.Equal(t, "depwarn", config.Name, name)
		assert.Equal(t, DefaultConfig().Rules, config.Rules, name)
	}
}
