package main

import (
	"render-engine/core"
	"render-engine/math"
	"render-engine/scene"
)

// orbitInput tracks mouse-drag state for camera orbiting, adapted from the
// teacher's CameraController (cmd/demo/main.go) but driving an
// scene.OrbitCamera's yaw/pitch/distance instead of a free-fly rig —
// matching the path tracer's camera model (spec §3's Camera: position,
// view matrix, aperture, focus distance).
type orbitInput struct {
	dragging   bool
	lastX      float64
	lastY      float64
	firstEvent bool
}

var orbitState = &orbitInput{firstEvent: true}

const (
	orbitLookSpeed = float32(0.005)
	orbitZoomSpeed = float32(4.0)
)

func newOrbitCam(width, height int) *scene.OrbitCamera {
	aspect := float32(width) / float32(height)
	cam := scene.NewOrbitCamera(math.Vec3{X: 0, Y: 1.5, Z: 0}, 7.0, 0.9599311, aspect)
	cam.Pitch = 0.35
	cam.UpdatePosition()
	return cam
}

// handleCameraInput orbits the camera on left-mouse-drag, zooms with
// +/- keys, and adjusts the aperture radius with [ and ] to exercise the
// thin-lens depth-of-field control surface (spec §6 "Scene" group).
func handleCameraInput(window *core.Window, cam *scene.OrbitCamera, dt float32) {
	leftDown := window.IsMouseButtonPressed(0)
	x, y := window.GetCursorPos()

	if leftDown {
		if !orbitState.dragging {
			orbitState.lastX, orbitState.lastY = x, y
			orbitState.dragging = true
		}
		dx := float32(x - orbitState.lastX)
		dy := float32(y - orbitState.lastY)
		cam.Orbit(dx*orbitLookSpeed, -dy*orbitLookSpeed)
		orbitState.lastX, orbitState.lastY = x, y
	} else {
		orbitState.dragging = false
	}

	if window.IsKeyPressed(core.KeyEqual) {
		cam.Zoom(-orbitZoomSpeed * dt)
	}
	if window.IsKeyPressed(core.KeyMinus) {
		cam.Zoom(orbitZoomSpeed * dt)
	}
	if window.IsKeyPressed(core.KeyLeftBracket) {
		cam.Aperture -= 0.2 * dt
		if cam.Aperture < 0 {
			cam.Aperture = 0
		}
	}
	if window.IsKeyPressed(core.KeyRightBracket) {
		cam.Aperture += 0.2 * dt
	}
}
