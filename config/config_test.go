package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAllowedOrigins(t *testing.T) {
	origins := ParseAllowedOrigins("https://app.example.co, https://staging.example.co")
	assert.Equal(t, []string{"https://app.example.co", "https://staging.example.co"}, origins)
}

func TestParseAllowedOriginsSkipsBlankEntries(t *testing.T) {
	origins := ParseAllowedOrigins("https://app.example.co,, ")
	assert.Equal(t, []string{"https://app.example.co"}, origins)
}

func TestParseAllowedOriginsDefault(t *testing.T) {
	assert.Equal(t, []string{"http://localhost:3000"}, ParseAllowedOrigins(""))
	assert.Equal(t, []string{"http://localhost:3000"}, ParseAllowedOrigins(" , "))
}
