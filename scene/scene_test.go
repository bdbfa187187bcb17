package scene

import (
	"testing"

	"render-engine/core"
	"render-engine/math"
)

func TestAddNodeAttachesUnderRoot(t *testing.T) {
	sg := NewScene()
	n := NewNode("Child")
	sg.AddNode(n)

	if n.Parent != sg.Root {
		t.Fatalf("AddNode should parent the node under Scene.Root")
	}
	if len(sg.Root.Children) != 1 || sg.Root.Children[0] != n {
		t.Fatalf("Scene.Root.Children should contain the added node")
	}
}

func TestRemoveNodeDetachesAndMarksDirty(t *testing.T) {
	sg := NewScene()
	n := NewNode("Child")
	sg.AddNode(n)
	_ = n.GetWorldMatrix() // force worldMatrixDirty to settle to false

	sg.RemoveNode(n)
	if n.Parent != nil {
		t.Fatalf("RemoveNode should clear the child's parent")
	}
	if len(sg.Root.Children) != 0 {
		t.Fatalf("RemoveNode should drop the node from Root.Children")
	}
	if !n.worldMatrixDirty {
		t.Fatalf("RemoveNode should mark the detached node's world matrix dirty")
	}
}

func TestNodeWorldMatrixInheritsParentTransform(t *testing.T) {
	parent := NewNode("Parent")
	parent.SetPosition(math.Vec3{X: 10, Y: 0, Z: 0})

	child := NewNode("Child")
	child.SetPosition(math.Vec3{X: 1, Y: 2, Z: 3})
	parent.AddChild(child)

	world := child.GetWorldMatrix()
	// Translation-only transforms: row 3 carries the translation (this
	// package's row-vector convention, matching Mat4Translation), and it is
	// the sum of the parent and local offsets.
	gotX, gotY, gotZ := world[3][0], world[3][1], world[3][2]
	if gotX != 11 || gotY != 2 || gotZ != 3 {
		t.Fatalf("child world translation = (%v,%v,%v), want (11,2,3)", gotX, gotY, gotZ)
	}
}

func TestMarkWorldMatrixDirtyPropagatesToChildren(t *testing.T) {
	parent := NewNode("Parent")
	child := NewNode("Child")
	parent.AddChild(child)
	_ = child.GetWorldMatrix() // settle dirty flag

	parent.SetPosition(math.Vec3{X: 5, Y: 0, Z: 0})
	if !child.worldMatrixDirty {
		t.Fatalf("moving a parent should mark its children's world matrices dirty too")
	}
}

func TestMaterialConstructorsSetExpectedKind(t *testing.T) {
	pbr := NewPBRMaterial("M", core.ColorWhite, 0.5, 0.3)
	if pbr.Kind != MaterialGGX {
		t.Fatalf("NewPBRMaterial: want MaterialGGX, got %v", pbr.Kind)
	}

	mirror := NewMirrorMaterial("Mirror", core.ColorWhite)
	if mirror.Kind != MaterialMirror {
		t.Fatalf("NewMirrorMaterial: want MaterialMirror, got %v", mirror.Kind)
	}

	glass := NewDielectricMaterial("Glass", core.ColorWhite, 1.5)
	if glass.Kind != MaterialDielectric || glass.IOR != 1.5 {
		t.Fatalf("NewDielectricMaterial: want MaterialDielectric/IOR 1.5, got %v/%v", glass.Kind, glass.IOR)
	}

	light := NewEmissiveMaterial("Light", core.Color{R: 5, G: 5, B: 5, A: 1})
	if light.EmissiveColor.R != 5 || light.BaseColor != core.ColorBlack {
		t.Fatalf("NewEmissiveMaterial should carry the emissive tint over black base color")
	}
}

// TestSunDirectionHorizonAndZenith checks the azimuth/elevation-to-direction
// formula against its two easiest closed-form cases: straight up, and along
// the horizon at azimuth 0.
func TestSunDirectionHorizonAndZenith(t *testing.T) {
	zenith := &Light{Type: LightTypeSun, Elevation: 1.5707964, Azimuth: 0}
	dir := zenith.SunDirection()
	if dir.Y > -0.999 {
		t.Fatalf("a sun at zenith should point nearly straight down (toward the surface), got %v", dir)
	}

	horizon := &Light{Type: LightTypeSun, Elevation: 0, Azimuth: 0}
	dir = horizon.SunDirection()
	if dir.Y < -0.01 || dir.Y > 0.01 {
		t.Fatalf("a sun on the horizon should have a direction with Y ~ 0, got %v", dir.Y)
	}
}

func TestOrbitCameraZoomClampsMinimumDistance(t *testing.T) {
	cam := NewOrbitCamera(math.Vec3{}, 5, 0.95, 1.0)
	cam.Zoom(-100)
	if cam.Distance != 0.1 {
		t.Fatalf("Zoom should clamp distance to the 0.1 minimum, got %v", cam.Distance)
	}
}

func TestOrbitCameraPitchClamp(t *testing.T) {
	cam := NewOrbitCamera(math.Vec3{}, 5, 0.95, 1.0)
	cam.Pitch = 10
	cam.UpdatePosition()
	if cam.Pitch != 1.5 {
		t.Fatalf("UpdatePosition should clamp pitch to 1.5, got %v", cam.Pitch)
	}

	cam.Pitch = -10
	cam.UpdatePosition()
	if cam.Pitch != -1.5 {
		t.Fatalf("UpdatePosition should clamp pitch to -1.5, got %v", cam.Pitch)
	}
}
