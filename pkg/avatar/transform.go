package avatar

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 returns the position as a mathgl vector.
func (p Position) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Yaw returns the rotation around the Y axis after elapsed time, wrapped into [0, 2π).
func (c Config) Yaw(elapsed time.Duration) float64 {
	if c.RotationSpeed == 0 {
		return 0
	}
	a := math.Mod(c.RotationSpeed*elapsed.Seconds(), 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Transform returns the model matrix Translate · RotateY(yaw) · Scale.
func (c Config) Transform(elapsed time.Duration) mgl64.Mat4 {
	p := c.Position.Vec3()
	t := mgl64.Translate3D(p.X(), p.Y(), p.Z())
	r := mgl64.HomogRotate3DY(c.Yaw(elapsed))
	s := mgl64.Scale3D(c.Scale, c.Scale, c.Scale)
	return t.Mul4(r).Mul4(s)
}

// TalkVolume is the synthetic mouth-open level used while the talk animation
// runs: a sum of three sines clipped at zero, so it lies in [0, 1].
func TalkVolume(elapsed time.Duration) float64 {
	t := elapsed.Seconds()
	v := math.Sin(t*8.0)*0.5 + math.Sin(t*13.7)*0.3 + math.Sin(t*5.3)*0.2
	return math.Max(0, v)
}
