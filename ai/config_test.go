package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.GeneratorHost)
	assert.NotEmpty(t, cfg.EmbeddingModel)
	assert.NotEmpty(t, cfg.GeneratorModel)
	assert.Equal(t, 40, cfg.SummaryWordLimit)

	require.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://remote:9100"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithGeneratorModel("gpt-4o-mini"),
		WithSummaryWordLimit(60),
	)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://remote:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://remote:9100/v1", cfg.GeneratorHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.GeneratorModel)
	assert.Equal(t, 60, cfg.SummaryWordLimit)
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"bare host", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already normalized", "http://localhost:11434/v1", "http://localhost:11434/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.GeneratorHost)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid default", func(c *Config) {}, false},
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }, true},
		{"missing generator host", func(c *Config) { c.GeneratorHost = "" }, true},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }, true},
		{"missing generator model", func(c *Config) { c.GeneratorModel = "" }, true},
		{"zero summary limit", func(c *Config) { c.SummaryWordLimit = 0 }, true},
		{"excessive summary limit", func(c *Config) { c.SummaryWordLimit = 1000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
