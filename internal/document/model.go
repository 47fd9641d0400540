// Package document reads and writes scene documents: a flat table of
// objects referenced by id, and the shapes placing them in a scene.
package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the format version written by this package.
const CurrentVersion = "1.0"

var (
	ErrUnknownNodeType    = errors.New("unknown node type")
	ErrDanglingReference  = errors.New("reference to missing object")
	ErrCycle              = errors.New("object references itself")
	ErrWrongNodeKind      = errors.New("object has the wrong kind for this reference")
	ErrInvalidData        = errors.New("invalid object data")
	ErrUnsupportedVersion = errors.New("unsupported document version")
	supportedVersions     = mustConstraint(">= 1.0, < 2.0")
)

func mustConstraint(c string) *semver.Constraints {
	cs, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return cs
}

type Document struct {
	Version string                `json:"version"`
	Scene   SceneMeta             `json:"scene"`
	Shapes  []ShapeRef            `json:"shapes"`
	Objects map[string]ObjectNode `json:"objects"`
}

type SceneMeta struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ShapeRef places a geometry object, with an optional appearance object,
// in the scene under a numeric shape id.
type ShapeRef struct {
	ID         uint32 `json:"id"`
	Name       string `json:"name,omitempty"`
	Geometry   string `json:"geometry"`
	Appearance string `json:"appearance,omitempty"`
}

type ObjectType string

const (
	ObjectTypeAmapSymbol              ObjectType = "AmapSymbol"
	ObjectTypeAsymmetricHull          ObjectType = "AsymmetricHull"
	ObjectTypeAxisRotated             ObjectType = "AxisRotated"
	ObjectTypeBezierCurve             ObjectType = "BezierCurve"
	ObjectTypeBezierCurve2D           ObjectType = "BezierCurve2D"
	ObjectTypeBezierPatch             ObjectType = "BezierPatch"
	ObjectTypeBox                     ObjectType = "Box"
	ObjectTypeCone                    ObjectType = "Cone"
	ObjectTypeCylinder                ObjectType = "Cylinder"
	ObjectTypeDisc                    ObjectType = "Disc"
	ObjectTypeElevationGrid           ObjectType = "ElevationGrid"
	ObjectTypeEulerRotated            ObjectType = "EulerRotated"
	ObjectTypeExtrudedHull            ObjectType = "ExtrudedHull"
	ObjectTypeExtrusion               ObjectType = "Extrusion"
	ObjectTypeFaceSet                 ObjectType = "FaceSet"
	ObjectTypeFont                    ObjectType = "Font"
	ObjectTypeFrustum                 ObjectType = "Frustum"
	ObjectTypeGroup                   ObjectType = "Group"
	ObjectTypeIFS                     ObjectType = "IFS"
	ObjectTypeImageTexture            ObjectType = "ImageTexture"
	ObjectTypeInline                  ObjectType = "Inline"
	ObjectTypeMaterial                ObjectType = "Material"
	ObjectTypeMonoSpectral            ObjectType = "MonoSpectral"
	ObjectTypeMultiSpectral           ObjectType = "MultiSpectral"
	ObjectTypeNurbsCurve              ObjectType = "NurbsCurve"
	ObjectTypeNurbsCurve2D            ObjectType = "NurbsCurve2D"
	ObjectTypeNurbsPatch              ObjectType = "NurbsPatch"
	ObjectTypeOriented                ObjectType = "Oriented"
	ObjectTypeParaboloid              ObjectType = "Paraboloid"
	ObjectTypePointSet                ObjectType = "PointSet"
	ObjectTypePointSet2D              ObjectType = "PointSet2D"
	ObjectTypePolyline                ObjectType = "Polyline"
	ObjectTypePolyline2D              ObjectType = "Polyline2D"
	ObjectTypeQuadSet                 ObjectType = "QuadSet"
	ObjectTypeRevolution              ObjectType = "Revolution"
	ObjectTypeScaled                  ObjectType = "Scaled"
	ObjectTypeScreenProjected         ObjectType = "ScreenProjected"
	ObjectTypeSphere                  ObjectType = "Sphere"
	ObjectTypeSwung                   ObjectType = "Swung"
	ObjectTypeTapered                 ObjectType = "Tapered"
	ObjectTypeText                    ObjectType = "Text"
	ObjectTypeTexture2D               ObjectType = "Texture2D"
	ObjectTypeTexture2DTransformation ObjectType = "Texture2DTransformation"
	ObjectTypeTranslated              ObjectType = "Translated"
	ObjectTypeTriangleSet             ObjectType = "TriangleSet"
)

// ObjectNode is one node of the scene graph. Children holds the ids of the
// nodes it is built from, in the order its type expects them; Data holds
// its own fields.
type ObjectNode struct {
	ID       string          `json:"id"`
	Type     ObjectType      `json:"type"`
	Name     string          `json:"name,omitempty"`
	Children []string        `json:"children,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// NewEmptyDocument creates a document with no shapes.
func NewEmptyDocument(sceneID, name string) *Document {
	return &Document{
		Version: CurrentVersion,
		Scene:   SceneMeta{ID: sceneID, Name: name},
		Shapes:  []ShapeRef{},
		Objects: map[string]ObjectNode{},
	}
}

// CheckVersion reports ErrUnsupportedVersion unless the document's version
// is a 1.x version. An empty version is read as CurrentVersion.
func (d *Document) CheckVersion() error {
	raw := d.Version
	if raw == "" {
		raw = CurrentVersion
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedVersion, raw, err)
	}
	if !supportedVersions.Check(v) {
		return fmt.Errorf("%w: %s", ErrUnsupportedVersion, raw)
	}
	return nil
}

// Parse decodes a JSON or YAML document and checks its version.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if isJSON(data) {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json document: %w", err)
		}
	} else {
		if err := unmarshalYAML(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml document: %w", err)
		}
	}
	if err := doc.CheckVersion(); err != nil {
		return nil, err
	}
	if doc.Objects == nil {
		doc.Objects = map[string]ObjectNode{}
	}
	return &doc, nil
}

func isJSON(data []byte) bool {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}

// unmarshalYAML decodes YAML through its JSON form so object data keeps
// one representation.
func unmarshalYAML(data []byte, v any) error {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	js, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	return json.Unmarshal(js, v)
}

// JSON encodes the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// YAML encodes the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	js, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := yaml.Unmarshal(js, &tree); err != nil {
		return nil, err
	}
	return yaml.Marshal(tree)
}
