package augment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw965/atrium/augment"
)

func TestParseConfig(t *testing.T) {
	cfg, err := augment.ParseConfig([]byte(`
steps:
  - affine: {scale: [0.9, 1.1], rotate: 10}
  - elastic: {sigma: [2, 3]}
  - fliplr: 0.5
`))
	require.NoError(t, err)
	require.Len(t, cfg.Steps, 3)
	assert.Equal(t, augment.Range{Min: 0.9, Max: 1.1}, *cfg.Steps[0].Affine.Scale)
	assert.Equal(t, augment.Constant(10), *cfg.Steps[0].Affine.Rotate)

	a, err := cfg.Build()
	require.NoError(t, err)
	seq, ok := a.(augment.Sequential)
	require.True(t, ok)
	require.Len(t, seq, 3)

	elastic, ok := seq[1].(augment.ElasticTransformation)
	require.True(t, ok)
	assert.Equal(t, augment.DefaultElasticTransformation().Alpha, elastic.Alpha)
	assert.Equal(t, augment.Range{Min: 2, Max: 3}, elastic.Sigma)
	assert.Equal(t, augment.Fliplr{P: 0.5}, seq[2])
}

func TestDefaultConfigBuilds(t *testing.T) {
	a, err := augment.DefaultConfig().Build()
	require.NoError(t, err)
	seq := a.(augment.Sequential)
	require.Len(t, seq, 2)
	assert.Equal(t, augment.Affine{
		Scale:  augment.Range{Min: 0.85, Max: 1.15},
		Rotate: augment.Range{Min: -45, Max: 45},
	}, seq[0])
}

func TestConfigErrors(t *testing.T) {
	_, err := augment.Config{}.Build()
	assert.Error(t, err)

	cfg, err := augment.ParseConfig([]byte("steps:\n  - fliplr: 2\n"))
	require.NoError(t, err)
	_, err = cfg.Build()
	assert.Error(t, err)

	_, err = augment.ParseConfig([]byte("steps:\n  - affine: {scale: [1, 2, 3]}\n"))
	assert.Error(t, err)

	p := 0.5
	_, err = augment.Config{Steps: []augment.StepConfig{{Fliplr: &p, Elastic: &augment.ElasticConfig{}}}}.Build()
	assert.Error(t, err)
}
