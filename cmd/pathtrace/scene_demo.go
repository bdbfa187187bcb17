package main

import (
	"render-engine/core"
	"render-engine/math"
	"render-engine/scene"
)

// buildDemoScene assembles a small Cornell-box-like scene exercising every
// material kind the path tracer dispatches on (spec §3): a GGX floor and
// walls, a mirror sphere, a dielectric (glass) sphere, a rough metallic
// sphere, an emissive ceiling quad acting as an area light, and a sun.
// Grounded on the teacher's cmd/demo/main.go scene-construction pattern
// (ground plane, primitive instances added as child nodes of scene.Root),
// adapted to build a CPU scene.Scene instead of populating a GPU renderer.
func buildDemoScene() (*scene.Scene, *scene.Light) {
	sg := scene.NewScene()
	sg.Ambient = core.Color{R: 0.05, G: 0.05, B: 0.07, A: 1}
	sg.SkyColor = core.Color{R: 0.5, G: 0.7, B: 1.0, A: 1}

	addMesh := func(name string, mesh *scene.Mesh, mat *scene.Material, pos math.Vec3, scale float32) {
		mesh.Material = mat
		n := scene.NewNode(name)
		n.Mesh = mesh
		n.SetPosition(pos)
		if scale != 1 {
			n.SetScale(math.Vec3{X: scale, Y: scale, Z: scale})
		}
		sg.AddNode(n)
	}

	floor := scene.NewPBRMaterial("Floor", core.Color{R: 0.72, G: 0.71, B: 0.68, A: 1}, 0, 0.9)
	addMesh("Floor", scene.CreatePlane(10, 10, 1), floor, math.Vec3{}, 1)

	backWall := scene.NewPBRMaterial("BackWall", core.Color{R: 0.7, G: 0.7, B: 0.72, A: 1}, 0, 0.95)
	backWallNode := scene.NewNode("BackWall")
	backWallNode.Mesh = scene.CreatePlane(10, 6, 1)
	backWallNode.Mesh.Material = backWall
	backWallNode.SetPosition(math.Vec3{X: 0, Y: 3, Z: -5})
	backWallNode.SetRotation(math.QuaternionFromAxisAngle(math.Vec3Right, -1.5707964))
	sg.AddNode(backWallNode)

	leftWall := scene.NewPBRMaterial("LeftWall", core.Color{R: 0.8, G: 0.15, B: 0.15, A: 1}, 0, 0.9)
	leftWallNode := scene.NewNode("LeftWall")
	leftWallNode.Mesh = scene.CreatePlane(6, 10, 1)
	leftWallNode.Mesh.Material = leftWall
	leftWallNode.SetPosition(math.Vec3{X: -5, Y: 3, Z: 0})
	leftWallNode.SetRotation(math.QuaternionFromAxisAngle(math.Vec3Front, 1.5707964))
	sg.AddNode(leftWallNode)

	rightWall := scene.NewPBRMaterial("RightWall", core.Color{R: 0.15, G: 0.6, B: 0.2, A: 1}, 0, 0.9)
	rightWallNode := scene.NewNode("RightWall")
	rightWallNode.Mesh = scene.CreatePlane(6, 10, 1)
	rightWallNode.Mesh.Material = rightWall
	rightWallNode.SetPosition(math.Vec3{X: 5, Y: 3, Z: 0})
	rightWallNode.SetRotation(math.QuaternionFromAxisAngle(math.Vec3Front, -1.5707964))
	sg.AddNode(rightWallNode)

	mirrorMat := scene.NewMirrorMaterial("Mirror", core.Color{R: 0.95, G: 0.95, B: 0.97, A: 1})
	addMesh("MirrorSphere", scene.CreateSphere(1.0, 32, 16), mirrorMat, math.Vec3{X: -2, Y: 1, Z: -1}, 1)

	glassMat := scene.NewDielectricMaterial("Glass", core.Color{R: 0.97, G: 0.98, B: 1.0, A: 1}, 1.5)
	addMesh("GlassSphere", scene.CreateSphere(1.0, 32, 16), glassMat, math.Vec3{X: 0, Y: 1, Z: 0.5}, 1)

	metalMat := scene.NewPBRMaterial("BrushedMetal", core.Color{R: 0.9, G: 0.78, B: 0.55, A: 1}, 1.0, 0.25)
	addMesh("MetalSphere", scene.CreateSphere(1.0, 32, 16), metalMat, math.Vec3{X: 2, Y: 1, Z: -1}, 1)

	lightMat := scene.NewEmissiveMaterial("CeilingLight", core.Color{R: 12, G: 11.5, B: 10.5, A: 1})
	lightNode := scene.NewNode("CeilingLight")
	lightNode.Mesh = scene.CreateQuad(2, 2)
	lightNode.Mesh.Material = lightMat
	lightNode.SetPosition(math.Vec3{X: 0, Y: 5.99, Z: 0})
	lightNode.SetRotation(math.QuaternionFromAxisAngle(math.Vec3Right, 1.5707964))
	sg.AddNode(lightNode)

	sun := &scene.Light{
		Type:             scene.LightTypeSun,
		Color:            core.Color{R: 1.0, G: 0.96, B: 0.9, A: 1},
		Intensity:        3.0,
		Azimuth:          0.9,
		Elevation:        0.7,
		AngularRadiusDeg: 0.27,
	}
	sg.AddLight(sun)

	return sg, sun
}
