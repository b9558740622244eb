package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Unique identifier used on the command line
	DisplayName string // UI display name
	Description string
}

type builtinScene struct {
	info  SceneInfo
	build func() *Scene
}

var builtinScenes = []builtinScene{
	{
		info:  SceneInfo{ID: "default", DisplayName: "Default", Description: "Sphere resting on a ground sphere"},
		build: NewDefaultScene,
	},
	{
		info:  SceneInfo{ID: "spheregrid", DisplayName: "Sphere Grid", Description: "5x5 grid of tinted spheres"},
		build: func() *Scene { return NewSphereGridScene(5) },
	},
	{
		info:  SceneInfo{ID: "empty", DisplayName: "Empty", Description: "Sky gradient only"},
		build: NewEmptyScene,
	},
}

// ListScenes returns the built-in scenes sorted by display name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		scenes = append(scenes, b.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes
}

// Lookup builds a fresh copy of the scene with the given ID
func Lookup(id string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.build(), nil
		}
	}
	return nil, fmt.Errorf("unknown scene %q", id)
}
