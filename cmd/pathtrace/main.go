// Command pathtrace hosts the CPU path-tracing core interactively: an
// orbit camera, a small demo scene exercising every BSDF kind, and a
// day/night cycle driving the sun — presented through a single blitted GL
// texture rather than the teacher's full rasterizer pipeline (spec §1 puts
// windowing/input and rasterization out of the path-tracing core's scope,
// but SPEC_FULL.md's DOMAIN STACK keeps core/window.go and go-gl wired as
// the minimal presentation surface needed to see the core run).
package main

import (
	"fmt"
	"time"

	"render-engine/core"
	remath "render-engine/math"
	"render-engine/pathtracer"
)

func main() {
	windowConfig := core.DefaultWindowConfig()
	windowConfig.Title = "Render Engine — Path Tracer"
	windowConfig.GLContext = true

	window, err := core.NewWindow(windowConfig)
	if err != nil {
		fmt.Printf("Failed to create window: %v\n", err)
		return
	}
	defer window.Destroy()

	presenter, err := newPresenter()
	if err != nil {
		fmt.Printf("Failed to initialize GL presenter: %v\n", err)
		return
	}

	sg, sunLight := buildDemoScene()
	pathScene := pathtracer.BuildScene(sg, nil)

	settings := pathtracer.DefaultSettings()
	settings.MaxSamples = 0 // unlimited progressive accumulation

	width, height := window.GetFramebufferSize()
	driver := pathtracer.NewDriver(width, height, pathScene, settings)

	cam := newOrbitCam(width, height)
	dn := newDayNight()

	lastFPSLog := time.Now()
	frameCount := 0
	lastFrame := time.Now()

	for !window.ShouldClose() {
		window.PollEvents()

		if window.IsKeyPressed(core.KeyEscape) {
			window.Handle.SetShouldClose(true)
		}

		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		handleCameraInput(window, cam, dt)

		if window.IsKeyPressed(core.KeyN) {
			dn.Active = false
		}
		if window.IsKeyPressed(core.KeyM) {
			dn.Active = true
		}
		dn.Update(dt)
		dn.Apply(sunLight, &driver.Settings)
		pathScene.Sun = &pathtracer.SunLight{
			Direction:     sunLight.SunDirection().Negate().Normalize(),
			AngularRadius: sunLight.AngularRadiusDeg * 3.1415927 / 180.0,
			Color:         remath.Vec3{X: sunLight.Color.R, Y: sunLight.Color.G, Z: sunLight.Color.B},
			Intensity:     sunLight.Intensity,
			Enabled:       true,
		}

		newW, newH := window.GetFramebufferSize()
		if newW != width || newH != height {
			width, height = newW, newH
			driver.Resize(width, height)
			cam.AspectRatio = float32(width) / float32(height)
		}

		driver.Settings.Aperture = cam.Aperture
		driver.CheckReset(cam, sg.Lights)
		driver.TraceFrame(cam)

		rgba := driver.ToneMap()
		presenter.Upload(width, height, rgba)
		presenter.Draw()

		window.SwapBuffers()

		frameCount++
		if now.Sub(lastFPSLog) >= time.Second {
			window.SetTitle(fmt.Sprintf("Render Engine — Path Tracer | %d fps | %d spp | %s",
				frameCount, driver.Accum.SampleCount, dn.TimeOfDayStr()))
			frameCount = 0
			lastFPSLog = now
		}
	}
}
