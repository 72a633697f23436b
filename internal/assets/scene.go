package assets

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gizmo/internal/engine/model"
	"github.com/Faultbox/gizmo/pkg/math"
)

// SceneFile is the YAML form of a node tree. Nodes are listed parents
// first; positions are world space, like model.Node transforms.
type SceneFile struct {
	Nodes []NodeSpec `yaml:"nodes"`
}

// NodeSpec describes one node.
type NodeSpec struct {
	Name     string     `yaml:"name"`
	Parent   string     `yaml:"parent"`
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"` // Euler angles, degrees
	Scale    float32    `yaml:"scale"`    // uniform; 0 means 1
	Box      [3]float32 `yaml:"box"`      // half extents; zero means no mesh
	Color    [3]float32 `yaml:"color"`
}

// ParseScene decodes a scene file.
func ParseScene(data []byte) (*SceneFile, error) {
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return &sf, nil
}

// Build creates the tree described by the file. Node names must be unique
// and every parent must be listed before its children.
func (sf *SceneFile) Build() (*model.Tree, error) {
	tree := model.NewTree()
	for _, ns := range sf.Nodes {
		if ns.Name == "" {
			return nil, fmt.Errorf("scene: unnamed node")
		}
		if _, dup := tree.Find(ns.Name); dup {
			return nil, fmt.Errorf("scene: duplicate node %q", ns.Name)
		}

		parent := model.NoNode
		if ns.Parent != "" {
			id, ok := tree.Find(ns.Parent)
			if !ok {
				return nil, fmt.Errorf("scene: node %q: %w %q", ns.Name, model.ErrInvalidParent, ns.Parent)
			}
			parent = id
		}

		id, err := tree.Add(ns.Name, parent, ns.transform())
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		n := tree.Node(id)
		n.Color = vec3(ns.Color)
		if half := vec3(ns.Box); half != (math.Vec3{}) {
			n.Mesh = model.NewBox(half.Negate(), half)
		}
	}
	return tree, nil
}

func (ns NodeSpec) transform() math.Mat4 {
	scale := ns.Scale
	if scale == 0 {
		scale = 1
	}
	m := math.EulerMatrix(vec3(ns.Rotation))
	m.Scale3x3(scale)
	m.SetOrigin(vec3(ns.Position))
	return m
}

// LoadScene loads and builds a scene file through the manager.
func (m *Manager) LoadScene(path string) (*model.Tree, error) {
	data, err := m.Load(path)
	if err != nil {
		return nil, err
	}
	sf, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tree, err := sf.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
