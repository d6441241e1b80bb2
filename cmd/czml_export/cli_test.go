package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/OCAP2/czml/internal/config"
	"github.com/OCAP2/czml/internal/recording"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[{"id":"1","name":"test","clock":{"interval":"2014-07-08T09:10:11Z/2015-06-07T03:08:04Z","currentTime":"2014-07-08T09:10:11Z","multiplier":1,"range":"UNBOUNDED","step":"SYSTEM_CLOCK_MULTIPLIER"}}]`

const fixture = "../../internal/recording/testdata/mission.json"

func writeConfig(t *testing.T, storage map[string]any) string {
	t.Helper()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := map[string]any{
		"logLevel": "debug",
		"logsDir":  filepath.Join(dir, "logs"),
		"storage":  storage,
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), data, 0644))
	return dir
}

func TestRun_NoArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage: czml_export")
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"frobnicate"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown command "frobnicate"`)
}

func TestRun_SampleToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"sample"}, &stdout, &stderr), stderr.String())
	assert.Equal(t, sampleJSON+"\n", stdout.String())
}

func TestRun_SampleIndentedToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sample.czml")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"sample", "-indent", out}, &stdout, &stderr), stderr.String())
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {\n")
	assert.JSONEq(t, sampleJSON, string(data))
}

func TestRun_ConvertMissingConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", t.TempDir(), "convert", fixture}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "error reading config file")
}

func TestRun_ConvertToFileStorage(t *testing.T) {
	dir := writeConfig(t, map[string]any{
		"type": "file",
		"file": map[string]any{"outputDir": filepath.Join(t.TempDir(), "out")},
	})

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-config", dir, "convert", fixture}, &stdout, &stderr), stderr.String())

	outputPath := filepath.Join(viper.GetString("storage.file.outputDir"), "Op_Thunder.czml")
	assert.Contains(t, stdout.String(), fixture+" -> "+outputPath)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var packets []map[string]any
	require.NoError(t, json.Unmarshal(data, &packets))
	require.Len(t, packets, 4)
	assert.Equal(t, "document", packets[0]["id"])
	assert.Equal(t, "Op Thunder", packets[0]["name"])

	logs, err := os.ReadDir(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.NotEmpty(t, logs)
}

func TestRun_ConvertReportsFailures(t *testing.T) {
	dir := writeConfig(t, map[string]any{
		"type": "file",
		"file": map[string]any{"outputDir": filepath.Join(t.TempDir(), "out")},
	})

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", dir, "convert", "missing.json", fixture}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "missing.json")
	assert.Contains(t, stdout.String(), fixture+" -> ")
}

func TestRun_ConvertNeedsRecordings(t *testing.T) {
	dir := writeConfig(t, map[string]any{"type": "file"})

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-config", dir, "convert"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "No recordings provided.")
}

func TestRun_ServeRejectsWriteOnlyStorage(t *testing.T) {
	dir := writeConfig(t, map[string]any{"type": "websocket"})

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"-config", dir, "serve"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `storage type "websocket" cannot serve documents`)
}

func TestDocumentName(t *testing.T) {
	tests := []struct {
		name    string
		mission string
		path    string
		want    string
	}{
		{"mission name", "Op Thunder", "a.json", "Op Thunder"},
		{"blank mission", "  ", "/tmp/recordings/op_dawn.json", "op_dawn"},
		{"gzipped file", "", "op_dusk.json.gz", "op_dusk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recording.Recording{MissionName: tt.mission}
			assert.Equal(t, tt.want, documentName(rec, tt.path))
		})
	}
}
