package cmdqueue

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sowinskl/go-proc/cmdbuilder"
)

func TestNewJob_FromSpec(t *testing.T) {
	b := cmdbuilder.New("hello world").
		SetPrefix("/bin/echo").
		SetWorkingDirectory("/tmp").
		SetEnv("MODE", "batch").
		DisableOutput()
	require.NoError(t, b.SetTimeout(90*time.Second))
	require.NoError(t, b.SetInput("stdin payload"))

	spec, err := b.Build()
	require.NoError(t, err)

	job, err := NewJob("greeting", spec)
	require.NoError(t, err)

	assert.Equal(t, "greeting", job.Name)
	assert.Equal(t, []string{"/bin/echo", "hello world"}, job.Argv)
	assert.Equal(t, "/tmp", job.Dir)
	assert.Equal(t, 90.0, job.TimeoutSec)
	assert.Equal(t, []byte("stdin payload"), job.Input)
	assert.True(t, job.InheritEnv)
	assert.True(t, job.DisableOutput)
	assert.Contains(t, job.Env, "MODE=batch")
}

func TestNewJob_Empty(t *testing.T) {
	_, err := NewJob("x", nil)
	assert.ErrorIs(t, err, ErrEmptyJob)

	_, err = NewJob("x", &cmdbuilder.Spec{})
	assert.ErrorIs(t, err, ErrEmptyJob)
}

func TestJob_WireRoundTrip(t *testing.T) {
	b := cmdbuilder.New("-c", "echo $HOME; true").SetPrefix("sh")
	require.NoError(t, b.SetTimeout(5 * time.Second))
	require.NoError(t, b.SetInput([]byte{0x01, 0x02}))

	spec, err := b.Build()
	require.NoError(t, err)

	job, err := NewJob("round-trip", spec)
	require.NoError(t, err)

	body, err := json.Marshal(job)
	require.NoError(t, err)

	var decoded Job
	require.NoError(t, json.Unmarshal(body, &decoded))

	got := decoded.Spec()
	assert.Equal(t, spec.Argv, got.Argv)
	assert.Equal(t, spec.Line, got.Line)
	assert.Equal(t, spec.Timeout, got.Timeout)
	assert.Equal(t, spec.OutputDisabled, got.OutputDisabled)

	data, err := io.ReadAll(got.Input)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, data)
}

func TestJob_Spec_EnvConventions(t *testing.T) {
	// Inheriting with no overrides: nil env survives the wire.
	inherit := &Job{Argv: []string{"x"}, InheritEnv: true}
	assert.Nil(t, inherit.Spec().Env)

	// Inheritance disabled with no overrides: the worker must receive an
	// exact (empty) environment, even though JSON dropped the slice.
	bare := &Job{Argv: []string{"x"}, InheritEnv: false}
	require.NotNil(t, bare.Spec().Env)
	assert.Empty(t, bare.Spec().Env)
}
