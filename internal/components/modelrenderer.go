package components

import (
	"gamecore/internal/assets"
	"gamecore/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ModelRenderer draws a raylib model at the object's world transform.
type ModelRenderer struct {
	engine.BaseComponent
	Model    rl.Model
	Color    rl.Color
	fromFile bool // true if loaded via asset manager
}

func NewModelRenderer(model rl.Model, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Model: model,
		Color: color,
	}
}

func NewModelRendererFromFile(path string, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Model:    assets.LoadModel(path),
		Color:    color,
		fromFile: true,
	}
}

func (m *ModelRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	m.Model.Transform = g.WorldMatrix()
	rl.DrawModel(m.Model, rl.Vector3Zero(), 1.0, m.Color)

	// Skinned models are drawn in bind pose; show the animated skeleton on top.
	if a := engine.GetComponent[*Animator](g); a != nil {
		a.DrawSkeleton(rl.Yellow)
	}
}

func (m *ModelRenderer) Unload() {
	// Only unload if not from asset manager (asset manager handles its own cleanup)
	if !m.fromFile {
		rl.UnloadModel(m.Model)
	}
}
