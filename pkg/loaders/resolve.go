package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// yamlScenePrefix marks scene ids produced by scene discovery
const yamlScenePrefix = "yaml:"

// Resolve returns a scene by builtin name, discovery id ("yaml:<name>" looked up in dir)
// or path to a YAML file.
func Resolve(nameOrPath, dir string) (*scene.Scene, error) {
	if s, err := scene.Builtin(nameOrPath); err == nil {
		return s, nil
	}

	if strings.HasPrefix(nameOrPath, yamlScenePrefix) {
		name := strings.TrimPrefix(nameOrPath, yamlScenePrefix)
		if err := validateSceneName(name); err != nil {
			return nil, err
		}
		for _, ext := range []string{".yaml", ".yml"} {
			candidate := filepath.Join(dir, name+ext)
			if _, err := os.Stat(candidate); err == nil {
				return LoadYAMLFile(candidate)
			}
		}
		return nil, fmt.Errorf("scene %q not found in %s", name, dir)
	}

	if isYAMLPath(nameOrPath) {
		return LoadYAMLFile(nameOrPath)
	}

	return nil, fmt.Errorf("unknown scene %q: expected one of %s or a .yaml file",
		nameOrPath, strings.Join(scene.BuiltinNames(), ", "))
}

// validateSceneName rejects discovery ids that would escape the scenes directory
func validateSceneName(name string) error {
	if name == "" {
		return fmt.Errorf("scene name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid scene name %q: directory traversal not allowed", name)
	}
	if strings.Contains(name, "\x00") {
		return fmt.Errorf("invalid scene name: null bytes not allowed")
	}
	if len(name) > 255 {
		return fmt.Errorf("scene name too long: maximum 255 characters allowed")
	}
	return nil
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func sceneNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
