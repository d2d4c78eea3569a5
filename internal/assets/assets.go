package assets

import (
	"errors"

	"gamecore/internal/logging"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	// ErrNoMeshes is returned for a model without usable triangle meshes.
	ErrNoMeshes = errors.New("model has no triangle meshes")
	// ErrNoSkeleton is returned for a model without bones.
	ErrNoSkeleton = errors.New("model has no skeleton")
)

var manager *Manager

// Manager caches what raylib loads so a file is read once however many objects
// use it. Loading needs a raylib window.
type Manager struct {
	models     map[string]rl.Model
	animations map[string][]rl.ModelAnimation
}

func Init() {
	manager = &Manager{
		models:     make(map[string]rl.Model),
		animations: make(map[string][]rl.ModelAnimation),
	}
}

func LoadModel(path string) rl.Model {
	if manager == nil {
		Init()
	}

	if model, exists := manager.models[path]; exists {
		return model
	}

	model := rl.LoadModel(path)
	manager.models[path] = model
	log := logging.For("assets")
	log.Debug().Str("path", path).Int32("meshes", model.MeshCount).Int32("bones", model.BoneCount).Msg("Loaded model")
	return model
}

// LoadModelAnimations returns the raw animations stored in path.
func LoadModelAnimations(path string) []rl.ModelAnimation {
	if manager == nil {
		Init()
	}

	if anims, exists := manager.animations[path]; exists {
		return anims
	}

	anims := rl.LoadModelAnimations(path)
	manager.animations[path] = anims
	log := logging.For("assets")
	log.Debug().Str("path", path).Int("animations", len(anims)).Msg("Loaded animations")
	return anims
}

func Unload() {
	if manager == nil {
		return
	}

	for _, model := range manager.models {
		rl.UnloadModel(model)
	}

	for _, anims := range manager.animations {
		rl.UnloadModelAnimations(anims)
	}

	manager.models = make(map[string]rl.Model)
	manager.animations = make(map[string][]rl.ModelAnimation)
}
