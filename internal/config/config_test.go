package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_decodesEngineConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.toml")
	contents := `
ranker = "linear"
training = "training.toml"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "linear", cfg.Ranker)
	assert.Equal(t, "training.toml", cfg.Training)
}

func Test_LoadTraining_decodesExamples(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "training.toml")
	contents := `
[[example]]
utterance = "one plus two"
denotation = 3

[[example]]
utterance = "two minus one"
denotation = 1
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	set, err := LoadTraining(path)
	require.NoError(t, err)
	require.Len(t, set.Example, 2)
	assert.Equal(t, "one plus two", set.Example[0].Utterance)
	assert.EqualValues(t, 3, set.Example[0].Denotation)
}
