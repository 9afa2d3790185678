// Package formats parses external 3D asset files into plain data structures.
package formats

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/xglobaltents/3D-App/pkg/math"
)

// GLBMesh is one flattened mesh primitive from a glTF/GLB file.
// Node transforms are already baked into positions, normals and tangents.
type GLBMesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	Tangents  [][4]float32
	TexCoords [][2]float32
	Indices   []uint32
}

// ParseGLB loads a .glb (or .gltf) file and returns its mesh primitives with
// world transforms applied. Primitives without a POSITION attribute are skipped.
func ParseGLB(path string) ([]GLBMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return flattenDocument(doc)
}

func flattenDocument(doc *gltf.Document) ([]GLBMesh, error) {
	var out []GLBMesh

	roots := sceneRoots(doc)
	for _, root := range roots {
		if err := walkNode(doc, root, math.Identity(), &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// sceneRoots returns the root node indices of the default scene, falling back
// to every node without a parent when no scene is declared.
func sceneRoots(doc *gltf.Document) []uint32 {
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx < len(doc.Scenes) && doc.Scenes[sceneIdx] != nil {
		return doc.Scenes[sceneIdx].Nodes
	}

	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n == nil {
			continue
		}
		for _, c := range n.Children {
			if int(c) < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

func walkNode(doc *gltf.Document, idx uint32, parent math.Mat4, out *[]GLBMesh) error {
	if int(idx) >= len(doc.Nodes) || doc.Nodes[idx] == nil {
		return nil
	}
	node := doc.Nodes[idx]
	world := parent.Mul(nodeMatrix(node))

	if node.Mesh != nil {
		meshIdx := *node.Mesh
		if int(meshIdx) < len(doc.Meshes) && doc.Meshes[meshIdx] != nil {
			gm := doc.Meshes[meshIdx]
			name := gm.Name
			if name == "" {
				name = node.Name
			}
			for _, prim := range gm.Primitives {
				flat, err := flattenPrimitive(doc, prim, name, world)
				if err != nil {
					return fmt.Errorf("mesh %q: %w", name, err)
				}
				if flat != nil {
					*out = append(*out, *flat)
				}
			}
		}
	}

	for _, child := range node.Children {
		if err := walkNode(doc, child, world, out); err != nil {
			return err
		}
	}
	return nil
}

func flattenPrimitive(doc *gltf.Document, prim *gltf.Primitive, name string, world math.Mat4) (*GLBMesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	m := GLBMesh{Name: name}
	m.Positions = make([][3]float32, len(positions))
	for i, p := range positions {
		m.Positions[i] = world.TransformPoint(p)
	}

	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
		m.Normals = make([][3]float32, len(normals))
		for i, n := range normals {
			m.Normals[i] = normalizeDir(world.TransformDirection(n))
		}
	}

	if tanIdx, ok := prim.Attributes[gltf.TANGENT]; ok {
		tangents, err := modeler.ReadTangent(doc, doc.Accessors[tanIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("tangents: %w", err)
		}
		m.Tangents = make([][4]float32, len(tangents))
		for i, t := range tangents {
			d := normalizeDir(world.TransformDirection([3]float32{t[0], t[1], t[2]}))
			m.Tangents[i] = [4]float32{d[0], d[1], d[2], t[3]}
		}
	}

	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("texcoords: %w", err)
		}
		m.TexCoords = uvs
	}

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		m.Indices = indices
	} else {
		// Non-indexed primitive: synthesize a trivial index buffer
		m.Indices = make([]uint32, len(m.Positions))
		for i := range m.Indices {
			m.Indices[i] = uint32(i)
		}
	}

	// A negative-determinant node transform flips handedness; reverse winding
	// so triangles stay front-facing.
	if det3x3(world) < 0 {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
		}
	}

	return &m, nil
}

// nodeMatrix returns the node's local transform. A zero-valued Matrix or Scale
// (possible on hand-built documents that bypass JSON defaults) is treated as
// identity.
func nodeMatrix(node *gltf.Node) math.Mat4 {
	if m, ok := explicitMatrix(node.Matrix); ok {
		return m
	}

	t := node.Translation
	r := node.Rotation
	s := node.Scale
	if s == [3]float32{0, 0, 0} {
		s = [3]float32{1, 1, 1}
	}
	if r == [4]float32{0, 0, 0, 0} {
		r = [4]float32{0, 0, 0, 1}
	}

	q := math.Quat{X: r[0], Y: r[1], Z: r[2], W: r[3]}
	result := math.Translate(t[0], t[1], t[2])
	result = result.Mul(q.ToMat4())
	return result.Mul(math.Scale(s[0], s[1], s[2]))
}

// explicitMatrix converts the glTF matrix field when it is set to something
// other than zero or identity.
func explicitMatrix(raw [16]float32) (math.Mat4, bool) {
	zero := [16]float32{}
	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if raw == zero || raw == identity {
		return math.Mat4{}, false
	}
	return math.Mat4(raw), true
}

func normalizeDir(d [3]float32) [3]float32 {
	v := math.Vec3{X: d[0], Y: d[1], Z: d[2]}.Normalize()
	return [3]float32{v.X, v.Y, v.Z}
}

func det3x3(m math.Mat4) float32 {
	return m[0]*(m[5]*m[10]-m[6]*m[9]) -
		m[4]*(m[1]*m[10]-m[2]*m[9]) +
		m[8]*(m[1]*m[6]-m[2]*m[5])
}
