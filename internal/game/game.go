package game

import (
	"fmt"
	"slices"
	"time"

	"gamecore/internal/animation"
	"gamecore/internal/assets"
	"gamecore/internal/bake"
	"gamecore/internal/components"
	"gamecore/internal/config"
	"gamecore/internal/engine"
	"gamecore/internal/logging"
	"gamecore/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Game struct {
	Scene     *engine.Scene
	Player    *engine.GameObject
	Rig       *engine.GameObject
	DebugMode bool

	cfg       config.Config
	contents  *bake.Contents
	modelPath string

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// New builds the sandbox scene. contents may be nil; modelPath, when set, is drawn
// on the rig once the window exists.
func New(cfg config.Config, contents *bake.Contents, modelPath string) *Game {
	g := &Game{cfg: cfg, contents: contents, modelPath: modelPath}
	g.Scene = g.buildScene()
	return g
}

func (g *Game) Run() {
	log := logging.For("game")

	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(1280, 720, "gamecore sandbox")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	rl.DisableCursor()

	assets.Init()
	defer assets.Unload()
	if g.modelPath != "" && g.Rig != nil {
		g.Rig.AddComponent(components.NewModelRendererFromFile(g.modelPath, rl.White))
	}

	g.Scene.Start()
	log.Info().
		Int("objects", len(g.Scene.GameObjects)).
		Int("triangles", g.Scene.Collision.TriangleCount()).
		Msg("Scene started")

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) buildScene() *engine.Scene {
	scene := engine.NewScene("Sandbox")

	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = rl.Vector3{Y: -0.5}
	floor.AddComponent(components.NewMeshRenderer(components.MeshCube, rl.DarkGray, rl.Vector3{X: 60, Y: 1, Z: 60}))
	floor.AddComponent(components.NewMeshCollider(physics.BoxPolyhedron(rl.Vector3{X: 60, Y: 1, Z: 60})))
	scene.AddGameObject(floor)

	ramp := engine.NewGameObject("Ramp")
	ramp.Transform.Position = rl.Vector3{X: -8, Y: 0.5, Z: -6}
	ramp.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, -20*rl.Deg2rad)
	ramp.AddComponent(components.NewMeshCollider(physics.BoxPolyhedron(rl.Vector3{X: 4, Y: 0.5, Z: 8})))
	scene.AddGameObject(ramp)

	spinner := engine.NewGameObject("Spinner")
	spinner.Transform.Position = rl.Vector3{X: 10, Y: 0.25, Z: 0}
	spinner.AddComponent(components.NewMeshRenderer(components.MeshCube, rl.DarkBlue, rl.Vector3{X: 6, Y: 0.5, Z: 2}))
	spinner.AddComponent(components.NewMeshCollider(physics.BoxPolyhedron(rl.Vector3{X: 6, Y: 0.5, Z: 2})))
	spinner.AddComponent(components.NewRotator(30))
	scene.AddGameObject(spinner)

	for i := 0; i < 5; i++ {
		crate := engine.NewGameObject(fmt.Sprintf("Crate_%d", i))
		crate.Tags = append(crate.Tags, "crate")
		crate.Transform.Position = rl.Vector3{X: float32(i*3 - 6), Y: 0.75, Z: -12}
		size := rl.Vector3{X: 1.5, Y: 1.5, Z: 1.5}
		crate.AddComponent(components.NewMeshRenderer(components.MeshCube, rl.Brown, size))
		box := components.NewBoxCollider(size)
		box.Static = true
		crate.AddComponent(box)
		scene.AddGameObject(crate)
	}

	if g.contents != nil {
		g.addBakedContents(scene)
	}

	g.Player = g.createPlayer()
	scene.AddGameObject(g.Player)
	return scene
}

func (g *Game) createPlayer() *engine.GameObject {
	player := engine.NewGameObject("Player")
	player.Transform.Position = rl.Vector3{X: 0, Y: 3, Z: 6}

	cc := components.NewCharacterController()
	cc.Gravity = g.cfg.Physics.Gravity
	cc.SlopeLimit = g.cfg.Physics.SlopeLimit
	cc.Slide = g.cfg.Physics.SlideConfig()
	player.AddComponent(cc)

	player.AddComponent(components.NewFPSController())
	player.AddComponent(components.NewCamera())
	player.AddComponent(components.NewShooter())
	return player
}

// addBakedContents places the baked collision meshes at the origin and puts the
// armature, if any, on a rig that plays the first animation by name.
func (g *Game) addBakedContents(scene *engine.Scene) {
	log := logging.For("game")

	names := make([]string, 0, len(g.contents.Polyhedra))
	for name := range g.contents.Polyhedra {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if scene.FindByName(name) != nil {
			log.Warn().Str("name", name).Msg("Baked mesh name is taken, skipping")
			continue
		}
		obj := engine.NewGameObject(name)
		obj.AddComponent(components.NewMeshCollider(g.contents.Polyhedra[name]))
		scene.AddGameObject(obj)
	}

	if g.contents.Armature == nil {
		return
	}
	g.Rig = engine.NewGameObject("Rig")
	g.Rig.Transform.Position = rl.Vector3{X: 6, Z: -4}
	animator := components.NewAnimator(g.contents.Armature)
	animator.Loop = g.cfg.Animation.Loop
	g.Rig.AddComponent(animator)
	scene.AddGameObject(g.Rig)

	anims := make([]string, 0, len(g.contents.Animations))
	for name := range g.contents.Animations {
		anims = append(anims, name)
	}
	slices.Sort(anims)
	if len(anims) > 0 {
		animator.Play(g.contents.Animations[anims[0]])
		log.Info().Str("animation", anims[0]).Int("bones", len(g.contents.Armature.Bones)).Msg("Playing")
	}
	animator.Finished.AddListener(func(a *animation.Animation) {
		log.Debug().Str("animation", a.Name).Msg("Animation finished")
	})
}

func (g *Game) Update() {
	updateStart := time.Now()

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	g.Scene.Update(rl.GetFrameTime())
	g.removeFallenShots()

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// removeFallenShots drops shots that left the level.
func (g *Game) removeFallenShots() {
	for _, shot := range g.Scene.FindByTag("shot") {
		if shot.WorldPosition().Y < -50 {
			g.Scene.RemoveGameObject(shot)
		}
	}
}

func (g *Game) Draw() {
	cam := engine.GetComponent[*components.Camera](g.Player)
	if cam == nil {
		return
	}

	camera := cam.GetRaylibCamera()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	components.DrawScene(g.Scene)
	if g.DebugMode {
		aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
		frustum := physics.CameraFrustum(camera, aspect, 0.1, 1000)
		drawCollision(g.Scene.Collision, frustum)
		drawColliderBounds(g.Scene, frustum)
	}
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

// drawCollision draws the visible collision triangles as wireframes with their
// normals.
func drawCollision(world *physics.World, frustum physics.Frustum) {
	for _, m := range world.Meshes {
		if !frustum.IntersectsAABB(m.Bounds) {
			continue
		}
		for i := range m.Triangles {
			tri := &m.Triangles[i]
			rl.DrawLine3D(tri.V0, tri.V1, rl.Green)
			rl.DrawLine3D(tri.V1, tri.V2, rl.Green)
			rl.DrawLine3D(tri.V2, tri.V0, rl.Green)

			center := rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(tri.V0, tri.V1), tri.V2), 1.0/3)
			if frustum.ContainsPoint(center) {
				rl.DrawLine3D(center, rl.Vector3Add(center, rl.Vector3Scale(tri.Normal, 0.25)), rl.Yellow)
			}
		}
	}
}

// drawColliderBounds outlines the world bounds of mesh and box colliders.
func drawColliderBounds(scene *engine.Scene, frustum physics.Frustum) {
	for _, obj := range scene.GameObjects {
		if !obj.Active {
			continue
		}
		var bounds physics.AABB
		color := rl.SkyBlue
		if mc := engine.GetComponent[*components.MeshCollider](obj); mc != nil {
			bounds = mc.Bounds()
		} else if bc := engine.GetComponent[*components.BoxCollider](obj); bc != nil {
			bounds = bc.GetAABB()
			color = rl.Orange
		} else {
			continue
		}
		if frustum.IntersectsAABB(bounds) {
			rl.DrawBoundingBox(rl.BoundingBox{Min: bounds.Min, Max: bounds.Max}, color)
		}
	}
}

func (g *Game) DrawUI() {
	rl.DrawText("WASD to move, Space to jump, Mouse to look, Click to shoot", 10, 10, 20, rl.LightGray)
	rl.DrawText("F1 to toggle debug view", 10, 35, 20, rl.LightGray)
	rl.DrawFPS(10, 60)

	if !g.DebugMode {
		return
	}

	pos := g.Player.WorldPosition()
	rl.DrawText(fmt.Sprintf("Position: (%.2f, %.2f, %.2f)", pos.X, pos.Y, pos.Z), 10, 85, 16, rl.Yellow)
	if cc := engine.GetComponent[*components.CharacterController](g.Player); cc != nil {
		ground := "-"
		if obj := cc.Ground(); obj != nil {
			ground = obj.Name
		}
		rl.DrawText(fmt.Sprintf("Grounded: %v (%s)", cc.IsGrounded(), ground), 10, 105, 16, rl.Yellow)
	}
	rl.DrawText(fmt.Sprintf("Triangles: %d", g.Scene.Collision.TriangleCount()), 10, 125, 16, rl.Yellow)
	if name, dist, ok := g.lookTarget(); ok {
		rl.DrawText(fmt.Sprintf("Looking at: %s (%.2f)", name, dist), 250, 125, 16, rl.Yellow)
	}
	if g.Rig != nil {
		if a := engine.GetComponent[*components.Animator](g.Rig); a != nil && a.Current() != nil {
			rl.DrawText(fmt.Sprintf("Animation: %s %.2fs", a.Current().Name, a.Time()), 10, 145, 16, rl.Yellow)
		}
	}

	rl.DrawText(fmt.Sprintf("Update:  %.2f ms", g.updateMs), 10, 170, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Draw:    %.2f ms", g.drawMs), 10, 190, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Total:   %.2f ms", g.updateMs+g.drawMs), 10, 210, 16, rl.Lime)
}

// lookTarget raycasts along the view and names the object that owns the hit geometry.
func (g *Game) lookTarget() (string, float32, bool) {
	eye, dir := g.lookRay()
	hit, ok := g.Scene.Raycast(eye, dir, 100)
	if !ok || hit.GameObject == nil {
		return "", 0, false
	}
	return hit.GameObject.Name, hit.Distance, true
}

// lookRay returns the player's eye position and view direction.
func (g *Game) lookRay() (rl.Vector3, rl.Vector3) {
	fps := engine.GetComponent[*components.FPSController](g.Player)
	x, y, z := fps.GetLookDirection()
	eye := rl.Vector3Add(g.Player.WorldPosition(), rl.Vector3{Y: fps.GetEyeHeight()})
	return eye, rl.Vector3Normalize(rl.Vector3{X: x, Y: y, Z: z})
}
