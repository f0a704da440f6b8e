package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Timeout time.Duration `env:"INNER_TIMEOUT"`
	Calls   int           `env:"INNER_CALLS"`
}

type sample struct {
	Path    string  `env:"SAMPLE_PATH,required"`
	Enabled bool    `env:"SAMPLE_ENABLED"`
	Ratio   float64 `env:"SAMPLE_RATIO"`
	Agent   string  `env:"SAMPLE_AGENT"`
	Empty   string  `env:"SAMPLE_EMPTY"`
	NoTag   string
	hidden  string `env:"SAMPLE_HIDDEN"`
	Inner   inner
	Ptr     *inner
}

func TestMarshalEnv(t *testing.T) {
	s := &sample{
		Path:    "/tmp/lexbot",
		Enabled: true,
		Ratio:   0.6,
		Agent:   "Mozilla/5.0 (X11)",
		NoTag:   "ignored",
		hidden:  "ignored",
		Inner:   inner{Timeout: 10 * time.Second, Calls: 10},
		Ptr:     &inner{Calls: 3},
	}

	got, err := MarshalEnv(s)
	require.NoError(t, err)

	want := "SAMPLE_PATH=/tmp/lexbot\n" +
		"SAMPLE_ENABLED=true\n" +
		"SAMPLE_RATIO=0.6\n" +
		"SAMPLE_AGENT=\"Mozilla/5.0 (X11)\"\n" +
		"INNER_TIMEOUT=10s\n" +
		"INNER_CALLS=10\n" +
		"INNER_CALLS=3\n"
	assert.Equal(t, want, got)
}

func TestMarshalEnv_Empty(t *testing.T) {
	got, err := MarshalEnv(&sample{})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestMarshalEnv_NotStruct(t *testing.T) {
	n := 5
	_, err := MarshalEnv(&n)
	assert.Error(t, err)

	var nilPtr *sample
	_, err = MarshalEnv(nilPtr)
	assert.Error(t, err)
}

func TestMarshalEnv_ZeroOverridesDefault(t *testing.T) {
	type withDefaults struct {
		CLI     bool   `env:"ENABLE_CLI" envDefault:"true"`
		Retries int    `env:"RETRIES" envDefault:"0"`
		Name    string `env:"NAME"`
		Path    string `env:"PATH_OVERRIDE" envDefault:".lexbot"`
	}

	got, err := MarshalEnv(withDefaults{})
	require.NoError(t, err)
	assert.Equal(t, "ENABLE_CLI=false\nRETRIES=0\n", got)
}
