package raypick

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// nodeDoc is the YAML form of a node.
type nodeDoc struct {
	Name     string     `yaml:"name"`
	Position []float64  `yaml:"position,omitempty"`
	Rotation []float64  `yaml:"rotation,omitempty"` // radians
	Scale    []float64  `yaml:"scale,omitempty"`
	Shape    *shapeDoc  `yaml:"shape,omitempty"`
	Blocking bool       `yaml:"blocking,omitempty"`
	Entity   uint32     `yaml:"entity,omitempty"`
	Children []*nodeDoc `yaml:"children,omitempty"`
}

// shapeDoc is the YAML form of a shape. Type selects which fields apply:
//
//	sphere:    center, radius
//	box:       size, or min and max
//	quad:      size (width, height)
//	triangles: vertices (flat x,y,z list), indices
type shapeDoc struct {
	Type     string    `yaml:"type"`
	Center   []float64 `yaml:"center,omitempty"`
	Radius   float64   `yaml:"radius,omitempty"`
	Size     []float64 `yaml:"size,omitempty"`
	Min      []float64 `yaml:"min,omitempty"`
	Max      []float64 `yaml:"max,omitempty"`
	Vertices []float64 `yaml:"vertices,omitempty"`
	Indices  []int     `yaml:"indices,omitempty"`
}

// LoadNodes builds a node tree from a YAML scene description. The returned
// node is not attached; add it with Scene.Add so blocking flags and handlers
// are registered with the event manager.
func LoadNodes(data []byte) (*Node, error) {
	var doc nodeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene yaml: %w", err)
	}
	n, err := buildNode(&doc, "")
	if err != nil {
		return nil, fmt.Errorf("parse scene yaml: %w", err)
	}
	return n, nil
}

func buildNode(doc *nodeDoc, path string) (*Node, error) {
	if doc == nil {
		return nil, fmt.Errorf("%s: empty node", path)
	}
	path = path + "/" + doc.Name

	var n *Node
	if doc.Shape != nil {
		shape, err := buildShape(doc.Shape)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		n = NewMesh(doc.Name, shape)
	} else {
		n = NewGroup(doc.Name)
	}

	var err error
	if n.Position, err = vec3Field(doc.Position, Vec3{}, "position"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if n.Rotation, err = vec3Field(doc.Rotation, Vec3{}, "rotation"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if n.Scale, err = vec3Field(doc.Scale, Vec3{1, 1, 1}, "scale"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	n.EntityID = doc.Entity
	if doc.Blocking {
		n.setBlocking(true)
	}

	for _, cd := range doc.Children {
		child, err := buildNode(cd, path)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func buildShape(sd *shapeDoc) (Shape, error) {
	switch sd.Type {
	case "sphere":
		c, err := vec3Field(sd.Center, Vec3{}, "center")
		if err != nil {
			return nil, err
		}
		if sd.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be > 0, got %v", sd.Radius)
		}
		return Sphere{Center: c, Radius: sd.Radius}, nil
	case "box":
		if len(sd.Size) > 0 {
			s, err := vec3Field(sd.Size, Vec3{}, "size")
			if err != nil {
				return nil, err
			}
			return NewBox(s.X, s.Y, s.Z), nil
		}
		lo, err := vec3Field(sd.Min, Vec3{}, "min")
		if err != nil {
			return nil, err
		}
		hi, err := vec3Field(sd.Max, Vec3{}, "max")
		if err != nil {
			return nil, err
		}
		return Box{Min: lo, Max: hi}, nil
	case "quad":
		if len(sd.Size) != 2 {
			return nil, fmt.Errorf("quad size needs 2 values, got %d", len(sd.Size))
		}
		return NewQuad(sd.Size[0], sd.Size[1]), nil
	case "triangles":
		if len(sd.Vertices)%3 != 0 {
			return nil, fmt.Errorf("triangles vertices length %d is not a multiple of 3", len(sd.Vertices))
		}
		if len(sd.Indices)%3 != 0 {
			return nil, fmt.Errorf("triangles indices length %d is not a multiple of 3", len(sd.Indices))
		}
		verts := make([]Vec3, len(sd.Vertices)/3)
		for i := range verts {
			verts[i] = Vec3{sd.Vertices[3*i], sd.Vertices[3*i+1], sd.Vertices[3*i+2]}
		}
		for _, idx := range sd.Indices {
			if idx < 0 || idx >= len(verts) {
				return nil, fmt.Errorf("triangles index %d out of range [0, %d)", idx, len(verts))
			}
		}
		return Triangles{Vertices: verts, Indices: sd.Indices}, nil
	}
	return nil, fmt.Errorf("unknown shape type %q", sd.Type)
}

func vec3Field(vals []float64, def Vec3, name string) (Vec3, error) {
	switch len(vals) {
	case 0:
		return def, nil
	case 3:
		return Vec3{vals[0], vals[1], vals[2]}, nil
	}
	return Vec3{}, fmt.Errorf("%s needs 3 values, got %d", name, len(vals))
}
