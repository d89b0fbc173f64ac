package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Builtin(t *testing.T) {
	s, err := Resolve("single-sphere", "")
	require.NoError(t, err)
	assert.Equal(t, "single-sphere", s.Name)
}

func TestResolve_DiscoveryID(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mine.yml"), []byte(sampleScene), 0644))

	s, err := Resolve("yaml:mine", dir)
	require.NoError(t, err)
	assert.Equal(t, "Sample", s.Name)

	_, err = Resolve("yaml:other", dir)
	assert.Error(t, err)
}

func TestResolve_Path(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScene), 0644))

	s, err := Resolve(path, "")
	require.NoError(t, err)
	assert.Equal(t, 2, s.GetPrimitiveCount())
}

func TestResolve_Unknown(t *testing.T) {
	_, err := Resolve("cornell", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default")
}

func TestValidateSceneName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"three-spheres", false},
		{"", true},
		{"../etc/passwd", true},
		{"sub/scene", true},
		{`sub\scene`, true},
		{"bad\x00name", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSceneName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
