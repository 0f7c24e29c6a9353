package utils

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("with nil values", func(t *testing.T) {
		config := NewConfig(nil)
		require.NotNil(t, config)
		assert.Len(t, config.Keys(), 0)
	})

	t.Run("with values", func(t *testing.T) {
		values := map[string]string{
			"key1": "value1",
			"key2": "value2",
		}
		config := NewConfig(values)

		assert.Equal(t, "value1", config.Get("key1"))
		assert.Equal(t, "value2", config.Get("key2"))

		// Verify it's a copy, not a reference
		values["key1"] = "modified"
		assert.NotEqual(t, "modified", config.Get("key1"))
	})
}

func TestNewConfigFromEnv(t *testing.T) {
	// Create a temporary .env file for testing
	envContent := "TEST_KEY1=test_value1\nTEST_KEY2=test_value2\n"
	tmpFile, err := os.CreateTemp("", "test_env_*.env")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(envContent)
	require.NoError(t, err)
	tmpFile.Close()

	config := NewConfigFromEnv(tmpFile.Name())

	require.NotNil(t, config)
	assert.Equal(t, "test_value1", config.Get("TEST_KEY1"))
	assert.Equal(t, "test_value2", config.Get("TEST_KEY2"))
}

func TestConfigGet(t *testing.T) {
	config := NewConfig(map[string]string{
		"existing": "value",
		"empty":    "",
	})

	t.Run("existing key", func(t *testing.T) {
		assert.Equal(t, "value", config.Get("existing"))
	})

	t.Run("non-existing key", func(t *testing.T) {
		assert.Empty(t, config.Get("missing"))
	})

	t.Run("empty value key", func(t *testing.T) {
		assert.Empty(t, config.Get("empty"))
	})
}

func TestConfigGetWithDefault(t *testing.T) {
	config := NewConfig(map[string]string{
		"existing": "value",
		"empty":    "",
	})

	assert.Equal(t, "value", config.GetWithDefault("existing", "default"))
	assert.Equal(t, "default", config.GetWithDefault("missing", "default"))
	assert.Equal(t, "default", config.GetWithDefault("empty", "default"))
}

func TestConfigGetInt(t *testing.T) {
	config := NewConfig(map[string]string{
		"number":  "42",
		"invalid": "not-a-number",
	})

	assert.Equal(t, 42, config.GetInt("number"))
	assert.Equal(t, 0, config.GetInt("invalid"))
	assert.Equal(t, 0, config.GetInt("missing"))

	assert.Equal(t, 42, config.GetIntWithDefault("number", 7))
	assert.Equal(t, 7, config.GetIntWithDefault("invalid", 7))
	assert.Equal(t, 7, config.GetIntWithDefault("missing", 7))
}

func TestConfigGetBool(t *testing.T) {
	config := NewConfig(map[string]string{
		"true":    "true",
		"false":   "false",
		"yes":     "yes",
		"on":      "on",
		"invalid": "maybe",
	})

	assert.True(t, config.GetBool("true"))
	assert.False(t, config.GetBool("false"))
	assert.True(t, config.GetBool("yes"))
	assert.True(t, config.GetBool("on"))
	assert.False(t, config.GetBool("invalid"))
	assert.False(t, config.GetBool("missing"))
}

func TestConfigSetAndHas(t *testing.T) {
	config := NewConfig(nil)

	assert.False(t, config.Has("key"))

	config.Set("key", "value")
	assert.True(t, config.Has("key"))
	assert.Equal(t, "value", config.Get("key"))
}

func TestConfigConcurrentAccess(t *testing.T) {
	config := NewConfig(map[string]string{"shared": "initial"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			config.Set("shared", "updated")
		}()
		go func() {
			defer wg.Done()
			_ = config.Get("shared")
		}()
	}
	wg.Wait()

	assert.True(t, config.Has("shared"))
}
