package document

import (
	"encoding/json"
	"fmt"

	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

// plain lists the types whose data decodes straight onto the node, with
// the node holding their default field values.
var plain = map[ObjectType]func() scene.Node{
	ObjectTypeSphere:     func() scene.Node { return &scene.Sphere{Radius: 0.5} },
	ObjectTypeCone:       func() scene.Node { return &scene.Cone{Radius: 0.5, Height: 1, Solid: true} },
	ObjectTypeCylinder:   func() scene.Node { return &scene.Cylinder{Radius: 0.5, Height: 1, Solid: true} },
	ObjectTypeFrustum:    func() scene.Node { return &scene.Frustum{Radius: 0.5, Height: 1, Taper: 0.5, Solid: true} },
	ObjectTypeParaboloid: func() scene.Node { return &scene.Paraboloid{Radius: 0.5, Height: 1, Shape: 2, Solid: true} },
	ObjectTypeBox:        func() scene.Node { return &scene.Box{Size: geom.Vec3{0.5, 0.5, 0.5}} },
	ObjectTypeDisc:       func() scene.Node { return &scene.Disc{Radius: 0.5} },
	ObjectTypeAsymmetricHull: func() scene.Node {
		return &scene.AsymmetricHull{
			NegXRadius: 0.5, PosXRadius: 0.5, NegYRadius: 0.5, PosYRadius: 0.5,
			Bottom: geom.Vec3{0, 0, -0.5}, Top: geom.Vec3{0, 0, 0.5},
			BottomShape: 2, TopShape: 2,
		}
	},
	ObjectTypeElevationGrid:           func() scene.Node { return &scene.ElevationGrid{XSpacing: 1, YSpacing: 1} },
	ObjectTypePointSet:                func() scene.Node { return &scene.PointSet{} },
	ObjectTypePointSet2D:              func() scene.Node { return &scene.PointSet2D{} },
	ObjectTypePolyline:                func() scene.Node { return &scene.Polyline{} },
	ObjectTypePolyline2D:              func() scene.Node { return &scene.Polyline2D{} },
	ObjectTypeText:                    func() scene.Node { return &scene.Text{} },
	ObjectTypeFont:                    func() scene.Node { return &scene.Font{Size: 12} },
	ObjectTypeMaterial:                func() scene.Node { m := *scene.DefaultMaterial; return &m },
	ObjectTypeImageTexture:            func() scene.Node { return &scene.ImageTexture{RepeatS: true, RepeatT: true} },
	ObjectTypeTexture2DTransformation: func() scene.Node { return &scene.Texture2DTransformation{Scale: geom.Vec2{1, 1}} },
	ObjectTypeTexture2D:               func() scene.Node { return &scene.Texture2D{BaseColor: scene.Color4{255, 255, 255, 255}} },
	ObjectTypeMonoSpectral:            func() scene.Node { return &scene.MonoSpectral{} },
	ObjectTypeMultiSpectral:           func() scene.Node { return &scene.MultiSpectral{} },
}

// Build turns the document into a scene. An object referenced from several
// places becomes one shared node.
func Build(doc *Document) (*scene.Scene, error) {
	b := &builder{doc: doc, nodes: make(map[string]scene.Node), building: make(map[string]bool)}
	return b.scene(doc.Shapes)
}

type builder struct {
	doc      *Document
	nodes    map[string]scene.Node
	building map[string]bool
}

func (b *builder) scene(refs []ShapeRef) (*scene.Scene, error) {
	sc := scene.NewScene()
	for i, ref := range refs {
		sh, err := b.shape(ref)
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, ref.Name, err)
		}
		sc.Add(sh)
	}
	return sc, nil
}

func (b *builder) shape(ref ShapeRef) (*scene.Shape, error) {
	g, err := b.geometry(ref.Geometry)
	if err != nil {
		return nil, err
	}
	var app scene.Appearance
	if ref.Appearance != "" {
		n, err := b.node(ref.Appearance)
		if err != nil {
			return nil, err
		}
		a, ok := n.(scene.Appearance)
		if !ok {
			return nil, fmt.Errorf("appearance %s: %w", ref.Appearance, ErrWrongNodeKind)
		}
		app = a
	}
	sh := scene.NewShape(g, app, ref.ID)
	sh.Name = ref.Name
	return sh, nil
}

// node returns the node of object id, building it on first use.
func (b *builder) node(id string) (scene.Node, error) {
	if n, ok := b.nodes[id]; ok {
		return n, nil
	}
	obj, ok := b.doc.Objects[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrDanglingReference)
	}
	if b.building[id] {
		return nil, fmt.Errorf("%s: %w", id, ErrCycle)
	}
	b.building[id] = true
	defer delete(b.building, id)

	n, err := b.decode(obj)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", obj.Type, id, err)
	}
	b.nodes[id] = n
	return n, nil
}

func (b *builder) geometry(id string) (scene.Geometry, error) {
	n, err := b.node(id)
	if err != nil {
		return nil, err
	}
	g, ok := n.(scene.Geometry)
	if !ok {
		return nil, fmt.Errorf("%s is not a geometry: %w", id, ErrWrongNodeKind)
	}
	return g, nil
}

func (b *builder) curve2D(id string) (scene.Curve2D, error) {
	n, err := b.node(id)
	if err != nil {
		return nil, err
	}
	c, ok := n.(scene.Curve2D)
	if !ok {
		return nil, fmt.Errorf("%s is not a 2D curve: %w", id, ErrWrongNodeKind)
	}
	return c, nil
}

func (b *builder) lineic(id string) (scene.LineicModel, error) {
	n, err := b.node(id)
	if err != nil {
		return nil, err
	}
	c, ok := n.(scene.LineicModel)
	if !ok {
		return nil, fmt.Errorf("%s is not a 3D curve: %w", id, ErrWrongNodeKind)
	}
	return c, nil
}

// child returns the geometry of the i-th child of obj.
func (b *builder) child(obj ObjectNode, i int) (scene.Geometry, error) {
	if i >= len(obj.Children) {
		return nil, fmt.Errorf("missing child %d: %w", i, ErrInvalidData)
	}
	return b.geometry(obj.Children[i])
}

func unmarshal(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return nil
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidData, err)
}

func (b *builder) decode(obj ObjectNode) (scene.Node, error) {
	if mk, ok := plain[obj.Type]; ok {
		n := mk()
		if err := unmarshal(obj.Data, n); err != nil {
			return nil, err
		}
		return n, nil
	}

	switch obj.Type {
	case ObjectTypeTriangleSet:
		var ts scene.TriangleSet
		if err := unmarshal(obj.Data, &ts); err != nil {
			return nil, err
		}
		checked, err := scene.NewTriangleSet(ts.Points, ts.Indices)
		if err != nil {
			return nil, invalid(err)
		}
		checked.TexCoords, checked.Solid = ts.TexCoords, ts.Solid
		return checked, nil

	case ObjectTypeQuadSet:
		var qs scene.QuadSet
		if err := unmarshal(obj.Data, &qs); err != nil {
			return nil, err
		}
		checked, err := scene.NewQuadSet(qs.Points, qs.Indices)
		if err != nil {
			return nil, invalid(err)
		}
		checked.TexCoords, checked.Solid = qs.TexCoords, qs.Solid
		return checked, nil

	case ObjectTypeFaceSet:
		var fs scene.FaceSet
		if err := unmarshal(obj.Data, &fs); err != nil {
			return nil, err
		}
		return checkedFaceSet(&fs)

	case ObjectTypeBezierCurve:
		var c scene.BezierCurve
		if err := unmarshal(obj.Data, &c); err != nil {
			return nil, err
		}
		n, err := scene.NewBezierCurve(c.CtrlPoints, c.Stride)
		return n, invalid(err)

	case ObjectTypeNurbsCurve:
		var c scene.NurbsCurve
		if err := unmarshal(obj.Data, &c); err != nil {
			return nil, err
		}
		n, err := scene.NewNurbsCurve(c.CtrlPoints, c.Degree, c.Knots, c.Stride)
		return n, invalid(err)

	case ObjectTypeBezierCurve2D:
		var c scene.BezierCurve2D
		if err := unmarshal(obj.Data, &c); err != nil {
			return nil, err
		}
		n, err := scene.NewBezierCurve2D(c.CtrlPoints, c.Stride)
		return n, invalid(err)

	case ObjectTypeNurbsCurve2D:
		var c scene.NurbsCurve2D
		if err := unmarshal(obj.Data, &c); err != nil {
			return nil, err
		}
		n, err := scene.NewNurbsCurve2D(c.CtrlPoints, c.Degree, c.Knots, c.Stride)
		return n, invalid(err)

	case ObjectTypeBezierPatch:
		var p scene.BezierPatch
		if err := unmarshal(obj.Data, &p); err != nil {
			return nil, err
		}
		n, err := scene.NewBezierPatch(p.CtrlPoints, p.UStride, p.VStride)
		return n, invalid(err)

	case ObjectTypeNurbsPatch:
		var p scene.NurbsPatch
		if err := unmarshal(obj.Data, &p); err != nil {
			return nil, err
		}
		n, err := scene.NewNurbsPatch(p.CtrlPoints, p.UDegree, p.VDegree, p.UKnots, p.VKnots, p.UStride, p.VStride)
		return n, invalid(err)

	case ObjectTypeGroup:
		g := &scene.Group{}
		for i := range obj.Children {
			c, err := b.child(obj, i)
			if err != nil {
				return nil, err
			}
			g.Children = append(g.Children, c)
		}
		return g, nil

	case ObjectTypeTranslated:
		n := &scene.Translated{}
		return b.wrap(obj, n, &n.Geometry)
	case ObjectTypeScaled:
		n := &scene.Scaled{Scale: geom.Vec3{1, 1, 1}}
		return b.wrap(obj, n, &n.Geometry)
	case ObjectTypeAxisRotated:
		n := &scene.AxisRotated{Axis: geom.Vec3{0, 0, 1}}
		return b.wrap(obj, n, &n.Geometry)
	case ObjectTypeEulerRotated:
		n := &scene.EulerRotated{}
		return b.wrap(obj, n, &n.Geometry)
	case ObjectTypeOriented:
		n := &scene.Oriented{Primary: geom.Vec3{1, 0, 0}, Secondary: geom.Vec3{0, 1, 0}}
		return b.wrap(obj, n, &n.Geometry)
	case ObjectTypeTapered:
		n := &scene.Tapered{BaseRadius: 1, TopRadius: 1}
		return b.wrap(obj, n, &n.Primitive)
	case ObjectTypeIFS:
		n := &scene.IFS{Depth: 1}
		if _, err := b.wrap(obj, n, &n.Geometry); err != nil {
			return nil, err
		}
		if _, err := n.Transformation().Instances(); err != nil {
			return nil, invalid(err)
		}
		return n, nil
	case ObjectTypeScreenProjected:
		n := &scene.ScreenProjected{KeepAspectRatio: true}
		return b.wrap(obj, n, &n.Geometry)

	case ObjectTypeAmapSymbol:
		n := &scene.AmapSymbol{}
		if err := unmarshal(obj.Data, n); err != nil {
			return nil, err
		}
		if n.Mesh != nil {
			fs, err := checkedFaceSet(n.Mesh)
			if err != nil {
				return nil, err
			}
			n.Mesh = fs
		}
		if len(obj.Children) > 0 {
			c, err := b.child(obj, 0)
			if err != nil {
				return nil, err
			}
			fs, ok := c.(*scene.FaceSet)
			if !ok {
				return nil, fmt.Errorf("amap symbol mesh must be a FaceSet: %w", ErrWrongNodeKind)
			}
			n.Mesh = fs
		}
		return n, nil

	case ObjectTypeRevolution:
		n := &scene.Revolution{}
		if err := unmarshal(obj.Data, n); err != nil {
			return nil, err
		}
		profile, err := b.curveChild(obj, 0)
		if err != nil {
			return nil, err
		}
		n.Profile = profile
		return n, nil

	case ObjectTypeSwung:
		var data struct {
			Angles []float64
			Slices int
			Stride int
		}
		if err := unmarshal(obj.Data, &data); err != nil {
			return nil, err
		}
		profiles := make([]scene.Curve2D, len(obj.Children))
		for i := range obj.Children {
			p, err := b.curveChild(obj, i)
			if err != nil {
				return nil, err
			}
			profiles[i] = p
		}
		n, err := scene.NewSwung(profiles, data.Angles, data.Slices, data.Stride)
		return n, invalid(err)

	case ObjectTypeExtrusion:
		n := &scene.Extrusion{}
		if err := unmarshal(obj.Data, n); err != nil {
			return nil, err
		}
		if len(obj.Children) != 2 {
			return nil, fmt.Errorf("extrusion needs an axis and a cross section: %w", ErrInvalidData)
		}
		axis, err := b.lineic(obj.Children[0])
		if err != nil {
			return nil, err
		}
		section, err := b.curveChild(obj, 1)
		if err != nil {
			return nil, err
		}
		n.Axis, n.CrossSection = axis, section
		return n, nil

	case ObjectTypeExtrudedHull:
		if len(obj.Children) != 2 {
			return nil, fmt.Errorf("extruded hull needs a vertical and a horizontal profile: %w", ErrInvalidData)
		}
		vertical, err := b.curveChild(obj, 0)
		if err != nil {
			return nil, err
		}
		horizontal, err := b.curveChild(obj, 1)
		if err != nil {
			return nil, err
		}
		return &scene.ExtrudedHull{Vertical: vertical, Horizontal: horizontal}, nil

	case ObjectTypeInline:
		var data struct {
			ID          *uint32
			Translation geom.Vec3
			Scale       *geom.Vec3
			Shapes      []ShapeRef
		}
		if err := unmarshal(obj.Data, &data); err != nil {
			return nil, err
		}
		inner, err := b.scene(data.Shapes)
		if err != nil {
			return nil, err
		}
		n := scene.NewInline(inner)
		n.Translation = data.Translation
		if data.ID != nil {
			n.ID = *data.ID
		}
		if data.Scale != nil {
			n.Scale = *data.Scale
		}
		return n, nil
	}
	return nil, fmt.Errorf("%q: %w", obj.Type, ErrUnknownNodeType)
}

func (b *builder) curveChild(obj ObjectNode, i int) (scene.Curve2D, error) {
	if i >= len(obj.Children) {
		return nil, fmt.Errorf("missing child %d: %w", i, ErrInvalidData)
	}
	return b.curve2D(obj.Children[i])
}

// wrap decodes the data of a single-child node onto n and sets its child.
func checkedFaceSet(fs *scene.FaceSet) (*scene.FaceSet, error) {
	checked, err := scene.NewFaceSet(fs.Points, fs.Indices)
	if err != nil {
		return nil, invalid(err)
	}
	checked.TexCoords, checked.Solid = fs.TexCoords, fs.Solid
	return checked, nil
}

func (b *builder) wrap(obj ObjectNode, n scene.Node, child *scene.Geometry) (scene.Node, error) {
	if err := unmarshal(obj.Data, n); err != nil {
		return nil, err
	}
	c, err := b.child(obj, 0)
	if err != nil {
		return nil, err
	}
	*child = c
	return n, nil
}
