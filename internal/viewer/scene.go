package viewer

import (
	"fmt"
	"path/filepath"

	"github.com/Faultbox/gizmo/internal/assets"
	"github.com/Faultbox/gizmo/internal/engine/model"
	"github.com/Faultbox/gizmo/pkg/math"
)

// DemoScene builds the tree shown at startup: a base with an arm on top of
// it and a hand at the end of the arm, and a free-standing crate.
func DemoScene() (*model.Tree, error) {
	tree := model.NewTree()

	type part struct {
		name   string
		parent string
		at     math.Vec3
		half   math.Vec3
		color  math.Vec3
	}
	parts := []part{
		{"base", "", math.Vec3{Y: -1}, math.Vec3{X: 1.5, Y: 0.25, Z: 1.5}, math.Vec3{X: 0.6, Y: 0.6, Z: 0.65}},
		{"arm", "base", math.Vec3{Y: 0.5}, math.Vec3{X: 0.25, Y: 1.25, Z: 0.25}, math.Vec3{X: 0.3, Y: 0.5, Z: 0.9}},
		{"hand", "arm", math.Vec3{Y: 2}, math.Vec3{X: 0.5, Y: 0.2, Z: 0.5}, math.Vec3{X: 0.9, Y: 0.4, Z: 0.3}},
		{"crate", "", math.Vec3{X: 3, Y: -0.5}, math.Vec3{X: 0.75, Y: 0.75, Z: 0.75}, math.Vec3{X: 0.8, Y: 0.7, Z: 0.4}},
	}

	for _, p := range parts {
		parent := model.NoNode
		if p.parent != "" {
			id, ok := tree.Find(p.parent)
			if !ok {
				return nil, fmt.Errorf("demo scene: %s: %w", p.parent, model.ErrInvalidParent)
			}
			parent = id
		}
		id, err := tree.Add(p.name, parent, math.TranslateV(p.at))
		if err != nil {
			return nil, fmt.Errorf("demo scene: %w", err)
		}
		n := tree.Node(id)
		n.Mesh = model.NewBox(p.half.Negate(), p.half)
		n.Color = p.color
	}
	return tree, nil
}

// LoadScene reads the scene file at path, or builds the demo scene when
// path is empty.
func LoadScene(path string) (*model.Tree, error) {
	if path == "" {
		return DemoScene()
	}
	m := assets.NewManager()
	defer m.Close()
	if err := m.AddDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return m.LoadScene(filepath.Base(path))
}
