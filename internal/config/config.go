// Package config loads the TOML-formatted files cmd/minnow accepts:
// engine configuration (which ranker to use) and training data (labeled
// utterance/denotation pairs). Grammar rules themselves are not
// config-loadable, since a rule's semantics is Go code; config only ever
// selects among and parameterizes the engine's built-in collaborators.
package config

import "github.com/BurntSushi/toml"

// Engine is the top-level shape of a minnow engine config file.
type Engine struct {
	// Ranker names which rank.Ranker to build: "constant", "linear", or
	// "softmax". Defaults to "constant" if empty.
	Ranker string `toml:"ranker"`

	// Training, if non-empty, names a TrainingSet file to load and train
	// the ranker against at startup.
	Training string `toml:"training"`
}

// Load decodes the engine config file at path.
func Load(path string) (Engine, error) {
	var e Engine
	_, err := toml.DecodeFile(path, &e)
	return e, err
}

// TrainingExample is one labeled utterance/denotation pair in a
// TrainingSet file.
type TrainingExample struct {
	Utterance  string `toml:"utterance"`
	Denotation int    `toml:"denotation"`
}

// TrainingSet is the shape of a training data file: a flat list of
// utterance/denotation examples, given as repeated [[example]] tables.
type TrainingSet struct {
	Example []TrainingExample `toml:"example"`
}

// LoadTraining decodes the training data file at path.
func LoadTraining(path string) (TrainingSet, error) {
	var t TrainingSet
	_, err := toml.DecodeFile(path, &t)
	return t, err
}
