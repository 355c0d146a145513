package world

import "github.com/df07/go-path-tracer/pkg/core"

// ObjectRef is an opaque, stable handle into a World's object arena.
type ObjectRef struct{ i index }

// Object binds a Shape to a Material and places it in the scene via a
// rigid transform.
type Object struct {
	Shape     ShapeRef
	Material  MaterialRef
	Transform Isometry
}

// World owns four arenas (shapes, albedos, materials, objects) that
// back the opaque handles handed out by its Add* methods. A World is
// built up mutably by scene-authoring code, then frozen (by convention
// -- nothing here enforces it) for the duration of a render; Scene
// references it without owning it.
type World struct {
	shapes    arena[Shape]
	albedos   arena[Albedo]
	materials arena[Material]
	objects   arena[Object]
}

// New creates an empty World.
func New() *World {
	return &World{}
}

func (w *World) AddSphere(radius core.F) ShapeRef {
	return ShapeRef{i: w.shapes.insert(SphereShape{Radius: radius})}
}

func (w *World) AddSolidAlbedo(color core.Vec3) AlbedoRef {
	return AlbedoRef{i: w.albedos.insert(SolidColor{Color: color})}
}

func (w *World) AddTextureAlbedo(tex core.TextureBuffer) AlbedoRef {
	return AlbedoRef{i: w.albedos.insert(TextureAlbedo{Texture: tex})}
}

func (w *World) AddLambertianMaterial(albedo AlbedoRef) MaterialRef {
	return MaterialRef{i: w.materials.insert(Lambertian{Albedo: albedo})}
}

func (w *World) AddMirrorMaterial() MaterialRef {
	return MaterialRef{i: w.materials.insert(Mirror{})}
}

func (w *World) AddEmittingMaterial(albedo AlbedoRef, factor core.F) MaterialRef {
	return MaterialRef{i: w.materials.insert(Emitting{Albedo: albedo, Factor: factor})}
}

func (w *World) AddObject(shape ShapeRef, mat MaterialRef, transform Isometry) ObjectRef {
	return ObjectRef{i: w.objects.insert(Object{Shape: shape, Material: mat, Transform: transform})}
}

// Shape resolves a ShapeRef to its Shape.
func (w *World) Shape(ref ShapeRef) Shape {
	return w.shapes.get(ref.i)
}

// Object resolves an ObjectRef to its Object.
func (w *World) Object(ref ObjectRef) Object {
	return w.objects.get(ref.i)
}

// ObjectCount returns the number of objects added so far; scene
// construction iterates [0, ObjectCount).
func (w *World) ObjectCount() int {
	return w.objects.len()
}

// ObjectRefAt returns the ObjectRef for the i-th inserted object.
func (w *World) ObjectRefAt(i int) ObjectRef {
	return ObjectRef{i: index{slot: i, gen: 0}}
}

// SampleAlbedo evaluates the albedo referenced by ref at the given
// texture coordinate.
func (w *World) SampleAlbedo(ref AlbedoRef, coord core.TextureCoord2D) core.Vec3 {
	return w.albedos.get(ref.i).Sample(coord)
}

// Material resolves a MaterialRef to its Material.
func (w *World) Material(ref MaterialRef) Material {
	return w.materials.get(ref.i)
}
