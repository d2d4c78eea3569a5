package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Integrate advances velocity by acceleration over dt (semi-implicit Euler) and
// returns the new velocity with the displacement the mover wants to make this step.
func Integrate(velocity, acceleration rl.Vector3, dt float32) (rl.Vector3, rl.Vector3) {
	v := rl.Vector3Add(velocity, rl.Vector3Scale(acceleration, dt))
	return v, rl.Vector3Scale(v, dt)
}
