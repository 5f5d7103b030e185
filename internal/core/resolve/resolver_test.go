package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scenekit/scenekit/internal/core/attributes"
	"github.com/scenekit/scenekit/internal/core/components"
	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/nodes"
	"github.com/scenekit/scenekit/internal/core/registry"
	"github.com/scenekit/scenekit/internal/core/resolve"
	"github.com/scenekit/scenekit/internal/core/scene"
)

func newResolver(t *testing.T) *resolve.Resolver {
	t.Helper()
	return resolve.New(scene.NewMemory(nil), nil, nil)
}

func TestResolveAttribute(t *testing.T) {
	t.Run("Attribute: resolves to the wrapper of the live tag", func(t *testing.T) {
		res := newResolver(t)
		name, err := res.Env().Backend.CreateNode("transform", "grp")
		require.NoError(t, err)

		attr, err := res.Attribute(name + ".translateX")
		require.NoError(t, err)
		require.IsType(t, attributes.Numeric{}, attr)

		attr, err = res.Attribute(name + ".rotateOrder")
		require.NoError(t, err)
		require.IsType(t, attributes.Enum{}, attr)

		attr, err = res.Attribute(name + ".visibility")
		require.NoError(t, err)
		require.IsType(t, attributes.Boolean{}, attr)
	})

	t.Run("Attribute: unknown tags fall back to the generic wrapper", func(t *testing.T) {
		res := newResolver(t)
		backend := res.Env().Backend
		name, err := backend.CreateNode("transform", "grp")
		require.NoError(t, err)
		require.NoError(t, backend.AddAttr(name, scene.AttrSpec{Name: "custom", Type: "hostOnlyType"}))

		attr, err := res.Attribute(name + ".custom")
		require.NoError(t, err)
		require.IsType(t, attributes.Attr{}, attr)
	})

	t.Run("Attribute: bare names without a dot are rejected", func(t *testing.T) {
		res := newResolver(t)
		_, err := res.Attribute("grp")
		require.ErrorIs(t, err, scene.ErrBadAttributeName)
	})

	t.Run("Attribute: missing attributes propagate the backend error", func(t *testing.T) {
		res := newResolver(t)
		name, err := res.Env().Backend.CreateNode("transform", "grp")
		require.NoError(t, err)
		_, err = res.Attribute(name + ".nope")
		require.ErrorIs(t, err, scene.ErrAttributeNotFound)
	})
}

func TestResolveNode(t *testing.T) {
	t.Run("Node: the most derived registered wrapper wins", func(t *testing.T) {
		res := newResolver(t)
		name, err := res.Env().Backend.CreateNode("mesh", "body")
		require.NoError(t, err)

		node, err := res.Node(name)
		require.NoError(t, err)
		require.IsType(t, nodes.Shape{}, node)
	})

	t.Run("Node: unregistered concrete types use the nearest ancestor", func(t *testing.T) {
		// Only shape and the fallback are registered, so a mesh resolves to
		// shape, and a plain transform to the generic node.
		reg := registry.New()
		reg.RegisterTypes(registry.CategoryNode, map[string]registry.Ctor{
			registry.FallbackTag: func(env entity.Env, name string) entity.Entity {
				return nodes.NewNode(env, name)
			},
			"shape": func(env entity.Env, name string) entity.Entity {
				return nodes.Shape{Node: nodes.NewNode(env, name)}
			},
		})
		res := resolve.New(scene.NewMemory(nil), reg, nil)

		mesh, err := res.Env().Backend.CreateNode("mesh", "body")
		require.NoError(t, err)
		node, err := res.Node(mesh)
		require.NoError(t, err)
		require.IsType(t, nodes.Shape{}, node)

		grp, err := res.Env().Backend.CreateNode("transform", "grp")
		require.NoError(t, err)
		node, err = res.Node(grp)
		require.NoError(t, err)
		require.IsType(t, nodes.Node{}, node)
	})

	t.Run("Node: missing nodes propagate the backend error", func(t *testing.T) {
		res := newResolver(t)
		_, err := res.Node("ghost")
		require.ErrorIs(t, err, scene.ErrNodeNotFound)
	})

	t.Run("Node: a registry without a fallback errors instead of panicking", func(t *testing.T) {
		res := resolve.New(scene.NewMemory(nil), registry.New(), nil)
		name, err := res.Env().Backend.CreateNode("transform", "grp")
		require.NoError(t, err)

		_, err = res.Node(name)
		require.ErrorIs(t, err, resolve.ErrUnknownType)
		_, err = res.Attribute(name + ".translateX")
		require.ErrorIs(t, err, resolve.ErrUnknownType)
		_, err = res.Component(name + ".vtx[0]")
		require.ErrorIs(t, err, resolve.ErrUnknownType)
	})
}

func TestResolveComponent(t *testing.T) {
	t.Run("Component: names parse into owner, tag and indices", func(t *testing.T) {
		res := newResolver(t)

		comp, err := res.Component("bodyShape.vtx[3]")
		require.NoError(t, err)
		require.IsType(t, components.Vertex{}, comp)
		require.Equal(t, "bodyShape", comp.OwnerName())
		require.Equal(t, "vtx", comp.Tag())
		require.Equal(t, []int{3}, comp.Indices())

		comp, err = res.Component("surfShape.cv[1][2]")
		require.NoError(t, err)
		require.IsType(t, components.CV{}, comp)
		require.Equal(t, []int{1, 2}, comp.Indices())
	})

	t.Run("Component: tags are matched with digits stripped", func(t *testing.T) {
		owner, tag, indices, err := resolve.ParseComponentName("surfShape.cv2[4]")
		require.NoError(t, err)
		require.Equal(t, "surfShape", owner)
		require.Equal(t, "cv", tag)
		require.Equal(t, []int{4}, indices)
	})

	t.Run("Component: malformed names never resolve", func(t *testing.T) {
		res := newResolver(t)
		for _, name := range []string{
			"bodyShape.vtx",
			"bodyShape.vtx[]",
			"bodyShape.vtx[3][4][5]",
			"bodyShape.[3]",
			".vtx[3]",
			"bodyShape",
		} {
			_, err := res.Component(name)
			require.ErrorIs(t, err, resolve.ErrInvalidComponentName, name)
		}
	})
}

func TestCreateNode(t *testing.T) {
	t.Run("Create: unregistered types fail, no fallback", func(t *testing.T) {
		res := newResolver(t)
		_, err := res.CreateNode(entity.NodeData{Name: "x", Type: "alienType"})
		require.ErrorIs(t, err, resolve.ErrUnknownType)
		require.False(t, res.Env().Backend.Exists("x"))
	})

	t.Run("Create: replays attributes, values and connections", func(t *testing.T) {
		res := newResolver(t)
		driver, err := res.Env().Backend.CreateNode("animCurve", "curve")
		require.NoError(t, err)

		node, err := res.CreateNode(entity.NodeData{
			Name: "grp",
			Type: "transform",
			Attributes: []entity.AttrData{
				{Name: "stretch", Type: scene.TypeDouble, Default: 1.0},
			},
			Values: map[string]any{"translateX": 2.5},
			Connections: [][2]string{
				{driver + ".output", "grp.translateY"},
			},
		})
		require.NoError(t, err)
		require.Equal(t, "grp", node.FullName())

		value, err := res.Env().Backend.GetAttr("grp.translateX")
		require.NoError(t, err)
		require.Equal(t, 2.5, value)
		require.True(t, res.Env().Backend.AttrExists("grp.stretch"))

		live, err := res.Env().Backend.IsConnected(driver+".output", "grp.translateY")
		require.NoError(t, err)
		require.True(t, live)
	})

	t.Run("Create: connections follow the assigned name on collision", func(t *testing.T) {
		res := newResolver(t)
		_, err := res.Env().Backend.CreateNode("transform", "grp")
		require.NoError(t, err)
		curve, err := res.Env().Backend.CreateNode("animCurve", "curve")
		require.NoError(t, err)

		node, err := res.CreateNode(entity.NodeData{
			Name: "grp",
			Type: "transform",
			Connections: [][2]string{
				{curve + ".output", "grp.translateX"},
			},
		})
		require.NoError(t, err)
		require.Equal(t, "grp1", node.FullName())

		live, err := res.Env().Backend.IsConnected(curve+".output", "grp1.translateX")
		require.NoError(t, err)
		require.True(t, live)
	})

	t.Run("Create: existing attributes only take the value", func(t *testing.T) {
		res := newResolver(t)
		name, err := res.Env().Backend.CreateNode("transform", "grp")
		require.NoError(t, err)

		attr, err := res.CreateAttribute(name, entity.AttrData{
			Name: "translateX", Type: scene.TypeDouble, Value: 7.0,
		})
		require.NoError(t, err)
		require.Equal(t, name+".translateX", attr.FullName())

		value, err := res.Env().Backend.GetAttr(name + ".translateX")
		require.NoError(t, err)
		require.Equal(t, 7.0, value)
	})

	t.Run("Create: attribute types must be registered", func(t *testing.T) {
		res := newResolver(t)
		name, err := res.Env().Backend.CreateNode("transform", "grp")
		require.NoError(t, err)
		_, err = res.CreateAttribute(name, entity.AttrData{Name: "odd", Type: "hostOnlyType"})
		require.ErrorIs(t, err, resolve.ErrUnknownType)
	})
}

func TestDataRoundTrip(t *testing.T) {
	t.Run("RoundTrip: a node rebuilt from its data matches", func(t *testing.T) {
		res := newResolver(t)
		backend := res.Env().Backend
		curve, err := backend.CreateNode("animCurve", "curve")
		require.NoError(t, err)
		name, err := backend.CreateNode("transform", "grp")
		require.NoError(t, err)
		require.NoError(t, backend.AddAttr(name, scene.AttrSpec{Name: "stretch", Type: scene.TypeDouble}))
		require.NoError(t, backend.SetAttr(name+".stretch", 3.0))
		require.NoError(t, backend.SetAttr(name+".translateZ", -1.0))
		require.NoError(t, backend.Connect(curve+".output", name+".translateZ"))

		node, err := res.Node(name)
		require.NoError(t, err)
		data, err := node.Data()
		require.NoError(t, err)

		// Rebuild into a fresh scene holding only the driver.
		fresh := resolve.New(scene.NewMemory(nil), nil, nil)
		_, err = fresh.Env().Backend.CreateNode("animCurve", "curve")
		require.NoError(t, err)
		rebuilt, err := fresh.CreateNode(data)
		require.NoError(t, err)
		require.Equal(t, name, rebuilt.FullName())

		rebuiltData, err := rebuilt.Data()
		require.NoError(t, err)
		require.Equal(t, data, rebuiltData)
	})
}
