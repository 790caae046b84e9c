package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Device is the pose of the tracked device camera. Yaw and Pitch are in
// degrees, using the same convention as the editor camera: yaw 0 looks down +X.
type Device struct {
	Position  rl.Vector3
	Yaw       float32
	Pitch     float32
	Fovy      float32
	LookSpeed float32 // Degrees per second when orbiting with the keyboard
	MoveSpeed float32 // Units per second
}

func New(pos rl.Vector3) *Device {
	return &Device{
		Position:  pos,
		Yaw:       -90.0,
		Pitch:     -30.0,
		Fovy:      60.0,
		LookSpeed: 60.0,
		MoveSpeed: 1.5,
	}
}

// NewLookingAt creates a device at pos facing target.
func NewLookingAt(pos, target rl.Vector3, fovy float32) *Device {
	d := New(pos)
	if fovy > 0 {
		d.Fovy = fovy
	}
	d.LookAt(target)
	return d
}

// LookAt turns the device toward target without moving it.
func (d *Device) LookAt(target rl.Vector3) {
	dir := rl.Vector3Subtract(target, d.Position)
	if rl.Vector3Length(dir) == 0 {
		return
	}
	dir = rl.Vector3Normalize(dir)
	d.Yaw = float32(math.Atan2(float64(dir.Z), float64(dir.X)) * 180 / math.Pi)
	d.Pitch = float32(math.Asin(float64(dir.Y)) * 180 / math.Pi)
	d.clampPitch()
}

func (d *Device) Turn(dYaw, dPitch float32) {
	d.Yaw += dYaw
	d.Pitch += dPitch
	d.clampPitch()
}

func (d *Device) clampPitch() {
	if d.Pitch > 89 {
		d.Pitch = 89
	}
	if d.Pitch < -89 {
		d.Pitch = -89
	}
}

// Update moves the device from keyboard input: arrows turn, WASD walks.
func (d *Device) Update(deltaTime float32) {
	turn := d.LookSpeed * deltaTime
	if rl.IsKeyDown(rl.KeyLeft) {
		d.Turn(-turn, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		d.Turn(turn, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		d.Turn(0, turn)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		d.Turn(0, -turn)
	}

	forward, right := d.getDirections()

	var moveDir rl.Vector3
	if rl.IsKeyDown(rl.KeyW) {
		moveDir = rl.Vector3Add(moveDir, forward)
	}
	if rl.IsKeyDown(rl.KeyS) {
		moveDir = rl.Vector3Subtract(moveDir, forward)
	}
	if rl.IsKeyDown(rl.KeyA) {
		moveDir = rl.Vector3Add(moveDir, right)
	}
	if rl.IsKeyDown(rl.KeyD) {
		moveDir = rl.Vector3Subtract(moveDir, right)
	}
	if rl.Vector3Length(moveDir) > 0 {
		moveDir = rl.Vector3Scale(rl.Vector3Normalize(moveDir), d.MoveSpeed*deltaTime)
		d.Position = rl.Vector3Add(d.Position, moveDir)
	}
}

// getDirections returns the horizontal forward and right vectors.
func (d *Device) getDirections() (forward, right rl.Vector3) {
	yawRad := float64(d.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Y: 0,
		Z: float32(math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(math.Sin(yawRad)),
		Y: 0,
		Z: float32(-math.Cos(yawRad)),
	}
	return
}

func (d *Device) GetRaylibCamera() rl.Camera3D {
	yawRad := float64(d.Yaw) * math.Pi / 180
	pitchRad := float64(d.Pitch) * math.Pi / 180

	target := rl.Vector3{
		X: d.Position.X + float32(math.Cos(yawRad)*math.Cos(pitchRad)),
		Y: d.Position.Y + float32(math.Sin(pitchRad)),
		Z: d.Position.Z + float32(math.Sin(yawRad)*math.Cos(pitchRad)),
	}

	return rl.Camera3D{
		Position:   d.Position,
		Target:     target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       d.Fovy,
		Projection: rl.CameraPerspective,
	}
}
