package nodes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/scenekit/scenekit/internal/core/attributes"
	_ "github.com/scenekit/scenekit/internal/core/components"
	"github.com/scenekit/scenekit/internal/core/entity"
	"github.com/scenekit/scenekit/internal/core/nodes"
	"github.com/scenekit/scenekit/internal/core/resolve"
	"github.com/scenekit/scenekit/internal/core/scene"
)

func newResolver(t *testing.T) *resolve.Resolver {
	t.Helper()
	return resolve.New(scene.NewMemory(nil), nil, nil)
}

func createTransform(t *testing.T, res *resolve.Resolver, name string) nodes.Transform {
	t.Helper()
	assigned, err := res.Env().Backend.CreateNode("transform", name)
	require.NoError(t, err)
	node, err := res.Node(assigned)
	require.NoError(t, err)
	return node.(nodes.Transform)
}

func TestNode(t *testing.T) {
	t.Run("Node: rename returns a fresh wrapper", func(t *testing.T) {
		res := newResolver(t)
		grp := createTransform(t, res, "grp")

		renamed, err := grp.Rename("root")
		require.NoError(t, err)
		require.Equal(t, "root", renamed.FullName())
		require.True(t, renamed.Exists())

		// the old wrapper keeps its stale name and resolves to nothing
		require.Equal(t, "grp", grp.FullName())
		require.False(t, grp.Exists())
	})

	t.Run("Node: lock blocks deletion", func(t *testing.T) {
		res := newResolver(t)
		grp := createTransform(t, res, "grp")

		require.NoError(t, grp.Lock())
		locked, err := grp.IsLocked()
		require.NoError(t, err)
		require.True(t, locked)
		require.ErrorIs(t, grp.Delete(), scene.ErrNodeLocked)

		require.NoError(t, grp.Unlock())
		require.NoError(t, grp.Delete())
		require.False(t, grp.Exists())
	})

	t.Run("Node: namespace derives from the name", func(t *testing.T) {
		res := newResolver(t)
		env := res.Env()
		require.NoError(t, env.Backend.AddNamespace("rig"))
		require.NoError(t, env.Backend.SetCurrentNamespace("rig"))
		node := createTransform(t, res, "hip")

		require.Equal(t, "rig:hip", node.FullName())
		require.Equal(t, "rig", node.Namespace())

		require.NoError(t, env.Backend.SetCurrentNamespace(":"))
		root := createTransform(t, res, "world")
		require.Equal(t, ":", root.Namespace())
	})

	t.Run("Node: added attributes resolve typed", func(t *testing.T) {
		res := newResolver(t)
		grp := createTransform(t, res, "grp")

		attr, err := grp.AddAttr(entity.AttrData{
			Name: "stretch", Type: scene.TypeDouble, Default: 1.0, Value: 2.0, Keyable: true,
		})
		require.NoError(t, err)
		value, err := attr.Get()
		require.NoError(t, err)
		require.Equal(t, 2.0, value)

		attrs, err := grp.Attrs()
		require.NoError(t, err)
		require.Equal(t, "stretch", attrs[len(attrs)-1].AttrName())
	})

	t.Run("Node: select makes the node the sole selection", func(t *testing.T) {
		res := newResolver(t)
		a := createTransform(t, res, "a")
		b := createTransform(t, res, "b")

		require.NoError(t, a.Select())
		require.NoError(t, b.Select())
		require.Equal(t, []string{"b"}, res.Env().Backend.Selection())
	})
}

func TestTransform(t *testing.T) {
	t.Run("Transform: translate, rotate, scale triples", func(t *testing.T) {
		res := newResolver(t)
		grp := createTransform(t, res, "grp")

		require.NoError(t, grp.SetTranslation(1, 2, 3))
		x, y, z, err := grp.Translation()
		require.NoError(t, err)
		require.Equal(t, []float64{1, 2, 3}, []float64{x, y, z})

		require.NoError(t, grp.SetScale(2, 2, 2))
		x, y, z, err = grp.Scale()
		require.NoError(t, err)
		require.Equal(t, []float64{2, 2, 2}, []float64{x, y, z})

		order, err := grp.RotateOrder()
		require.NoError(t, err)
		require.Equal(t, "xyz", order)
		require.NoError(t, grp.SetRotateOrder("zxy"))
		order, err = grp.RotateOrder()
		require.NoError(t, err)
		require.Equal(t, "zxy", order)
		require.Error(t, grp.SetRotateOrder("abc"))
	})

	t.Run("Transform: local matrix carries the translation", func(t *testing.T) {
		res := newResolver(t)
		grp := createTransform(t, res, "grp")
		require.NoError(t, grp.SetTranslation(5, -2, 1))

		m, err := grp.LocalMatrix()
		require.NoError(t, err)
		x, y, z := m.Translation()
		require.Equal(t, []float64{5, -2, 1}, []float64{x, y, z})
	})

	t.Run("Transform: world matrix composes ancestors", func(t *testing.T) {
		res := newResolver(t)
		parent := createTransform(t, res, "parent")
		child := createTransform(t, res, "child")
		require.NoError(t, child.SetParent(parent.FullName()))
		require.NoError(t, parent.SetTranslation(10, 0, 0))
		require.NoError(t, child.SetTranslation(0, 5, 0))

		world, err := child.WorldMatrix()
		require.NoError(t, err)
		x, y, z := world.Translation()
		require.InDelta(t, 10, x, 1e-9)
		require.InDelta(t, 5, y, 1e-9)
		require.InDelta(t, 0, z, 1e-9)

		resolved, err := child.Parent()
		require.NoError(t, err)
		require.Equal(t, "parent", resolved.FullName())
		children, err := parent.Children()
		require.NoError(t, err)
		require.Len(t, children, 1)
	})
}

func TestShape(t *testing.T) {
	t.Run("Shape: components come back as registered wrappers", func(t *testing.T) {
		res := newResolver(t)
		name, err := res.Env().Backend.CreateNode("mesh", "bodyShape")
		require.NoError(t, err)
		node, err := res.Node(name)
		require.NoError(t, err)
		shape := node.(nodes.Shape)

		vtx, err := shape.Vertex(3)
		require.NoError(t, err)
		require.Equal(t, "bodyShape.vtx[3]", vtx.FullName())
		require.Equal(t, []int{3}, vtx.Indices())

		cv, err := shape.CV(1, 2)
		require.NoError(t, err)
		require.Equal(t, "bodyShape.cv[1][2]", cv.FullName())
		require.Equal(t, []int{1, 2}, cv.Indices())
	})

	t.Run("Shape: parent transform resolves", func(t *testing.T) {
		res := newResolver(t)
		grp := createTransform(t, res, "body")
		name, err := res.Env().Backend.CreateNode("mesh", "bodyShape")
		require.NoError(t, err)
		require.NoError(t, res.Env().Backend.SetParent(name, grp.FullName()))

		node, err := res.Node(name)
		require.NoError(t, err)
		parent, err := node.(nodes.Shape).ParentTransform()
		require.NoError(t, err)
		require.Equal(t, "body", parent.FullName())
	})
}

func TestConstraint(t *testing.T) {
	t.Run("Constraint: drivers and driven walk the graph", func(t *testing.T) {
		res := newResolver(t)
		driver := createTransform(t, res, "driver")
		driven := createTransform(t, res, "driven")

		constraint, err := nodes.Constrain(res.Env(), "pointConstraint", driver.FullName(), driven.FullName())
		require.NoError(t, err)
		require.NotNil(t, constraint)

		drivers, err := constraint.Drivers()
		require.NoError(t, err)
		require.Len(t, drivers, 1)
		require.Equal(t, "driver", drivers[0].FullName())

		drivenNodes, err := constraint.Driven()
		require.NoError(t, err)
		require.Len(t, drivenNodes, 1)
		require.Equal(t, "driven", drivenNodes[0].FullName())
	})

	t.Run("Constraint: missing drivers warn and return nil", func(t *testing.T) {
		res := newResolver(t)
		driven := createTransform(t, res, "driven")

		constraint, err := nodes.Constrain(res.Env(), "pointConstraint", "ghost", driven.FullName())
		require.NoError(t, err)
		require.Nil(t, constraint)
	})
}

func TestSkinCluster(t *testing.T) {
	newSkin := func(t *testing.T, res *resolve.Resolver, name string) nodes.SkinCluster {
		t.Helper()
		assigned, err := res.Env().Backend.CreateNode("skinCluster", name)
		require.NoError(t, err)
		node, err := res.Node(assigned)
		require.NoError(t, err)
		return node.(nodes.SkinCluster)
	}

	t.Run("SkinCluster: weights must sum to one", func(t *testing.T) {
		res := newResolver(t)
		skin := newSkin(t, res, "skin")
		hip := createTransform(t, res, "hip")
		knee := createTransform(t, res, "knee")
		require.NoError(t, skin.AddInfluence(hip.FullName()))
		require.NoError(t, skin.AddInfluence(knee.FullName()))

		require.Error(t, skin.SetWeights(0, map[string]float64{"hip": 0.3, "knee": 0.3}))
		require.NoError(t, skin.SetWeights(0, map[string]float64{"hip": 0.75, "knee": 0.25}))

		weights, err := skin.Weights(0)
		require.NoError(t, err)
		require.Equal(t, map[string]float64{"hip": 0.75, "knee": 0.25}, weights)

		influences, err := skin.Influences()
		require.NoError(t, err)
		require.Len(t, influences, 2)
	})

	t.Run("SkinCluster: copying weights binds missing influences", func(t *testing.T) {
		res := newResolver(t)
		src := newSkin(t, res, "src")
		dst := newSkin(t, res, "dst")
		createTransform(t, res, "hip")
		require.NoError(t, src.AddInfluence("hip"))
		require.NoError(t, src.SetWeights(2, map[string]float64{"hip": 1}))

		require.NoError(t, src.CopyWeightsTo(dst))

		weights, err := dst.Weights(2)
		require.NoError(t, err)
		require.Equal(t, map[string]float64{"hip": 1}, weights)
	})
}

func TestAnimCurve(t *testing.T) {
	t.Run("AnimCurve: keys on output drive attributes", func(t *testing.T) {
		res := newResolver(t)
		assigned, err := res.Env().Backend.CreateNode("animCurve", "curve")
		require.NoError(t, err)
		node, err := res.Node(assigned)
		require.NoError(t, err)
		curve := node.(nodes.AnimCurve)
		grp := createTransform(t, res, "grp")

		require.NoError(t, curve.SetKey(1, 0, "auto", "auto"))
		require.NoError(t, curve.SetKey(11, 10, "auto", "auto"))
		value, err := curve.EvaluateAt(6)
		require.NoError(t, err)
		require.InDelta(t, 5, value, 1e-9)

		require.NoError(t, curve.DriveAttr(grp.FullName()+".translateX"))
		driven, err := curve.DrivenAttrs()
		require.NoError(t, err)
		require.Equal(t, []string{"grp.translateX"}, driven)

		keys, err := curve.Keys()
		require.NoError(t, err)
		require.Len(t, keys, 2)
		require.NoError(t, curve.RemoveKey(1))
		_, err = curve.KeyAt(1)
		require.ErrorIs(t, err, scene.ErrKeyNotFound)
	})
}
