package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/sandevgo/lexbot/configs"
	"github.com/sandevgo/lexbot/internal/providers/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRuntime(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEXBOT_RUNTIME_PATH", dir)
	t.Setenv("ENABLE_CLI", "false")
	t.Setenv("ENABLE_HTTP", "true")
	t.Setenv("HTTP_ADDR", "0.0.0.0:8080")

	var out bytes.Buffer
	require.NoError(t, writeRuntime(&out, false))
	assert.Contains(t, out.String(), filepath.Join(dir, ".env"))

	vars, err := godotenv.Read(filepath.Join(dir, ".env"))
	require.NoError(t, err)

	assert.Equal(t, "false", vars["ENABLE_CLI"])
	assert.Equal(t, "true", vars["ENABLE_HTTP"])
	assert.Equal(t, "0.0.0.0:8080", vars["HTTP_ADDR"])
	assert.Equal(t, configs.KnowledgeFile, vars["KNOWLEDGE_PATH"])
	assert.Equal(t, "Mozilla/5.0", vars["SCRAPE_USER_AGENT"])
	assert.Equal(t, "0.6", vars["MATCH_THRESHOLD"])
	assert.NotContains(t, vars, "LEXBOT_RUNTIME_PATH")
	assert.NotContains(t, vars, "TELEGRAM_TOKEN")

	entries, err := knowledge.Load(filepath.Join(dir, configs.KnowledgeFile))
	require.NoError(t, err)
	assert.Len(t, entries, 8)
}

func TestWriteRuntime_Force(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEXBOT_RUNTIME_PATH", dir)

	var out bytes.Buffer
	require.NoError(t, writeRuntime(&out, false))

	err := writeRuntime(&out, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, os.WriteFile(filepath.Join(dir, configs.KnowledgeFile), []byte("broken"), 0644))
	require.NoError(t, writeRuntime(&out, true))

	_, err = knowledge.Load(filepath.Join(dir, configs.KnowledgeFile))
	assert.NoError(t, err)
}

func TestWriteRuntime_Telegram(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEXBOT_RUNTIME_PATH", dir)
	t.Setenv("ENABLE_TELEGRAM", "true")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_OWNER_ID", "42")

	var out bytes.Buffer
	require.NoError(t, writeRuntime(&out, false))

	vars, err := godotenv.Read(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "123:abc", vars["TELEGRAM_TOKEN"])
	assert.Equal(t, "42", vars["TELEGRAM_OWNER_ID"])
}
