package document

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/typeid"
)

// NewSampleDocument returns a small plant: a bent stem, a whorl of three
// leaves sharing one patch, a terminal leaf, a bud embedded as an inline
// scene, a crown envelope and a tapered root.
func NewSampleDocument(sceneID string) *Document {
	now := time.Now().UTC().Format(time.RFC3339)

	stemAxisID := typeid.NewObjectID()
	stemSectionID := typeid.NewObjectID()
	stemID := typeid.NewObjectID()
	barkID := typeid.NewObjectID()
	leafID := typeid.NewObjectID()
	whorlID := typeid.NewObjectID()
	topLeafID := typeid.NewObjectID()
	greenID := typeid.NewObjectID()
	budSphereID := typeid.NewObjectID()
	budScaledID := typeid.NewObjectID()
	budID := typeid.NewObjectID()
	petalID := typeid.NewObjectID()
	crownVerticalID := typeid.NewObjectID()
	crownHorizontalID := typeid.NewObjectID()
	crownHullID := typeid.NewObjectID()
	crownID := typeid.NewObjectID()
	crownMatID := typeid.NewObjectID()
	rootCurveID := typeid.NewObjectID()
	rootID := typeid.NewObjectID()

	whorl := make([]geom.Mat4, 3)
	for i := range whorl {
		whorl[i] = geom.AxisRotation(geom.Vec3{0, 0, 1}, float64(i)*2*math.Pi/3).Mul4(geom.Translation(geom.Vec3{0, 0, 5}))
	}

	return &Document{
		Version: CurrentVersion,
		Scene: SceneMeta{
			ID:        sceneID,
			Name:      "Sample plant",
			CreatedAt: now,
			UpdatedAt: now,
		},
		Shapes: []ShapeRef{
			{ID: 1, Name: "stem", Geometry: stemID, Appearance: barkID},
			{ID: 2, Name: "whorl", Geometry: whorlID, Appearance: greenID},
			{ID: 3, Name: "top leaf", Geometry: topLeafID, Appearance: greenID},
			{ID: 4, Name: "bud", Geometry: budID},
			{ID: 5, Name: "crown", Geometry: crownID, Appearance: crownMatID},
			{ID: 6, Name: "root", Geometry: rootID},
		},
		Objects: map[string]ObjectNode{
			stemAxisID: {
				ID:   stemAxisID,
				Type: ObjectTypeBezierCurve,
				Name: "stem axis",
				Data: json.RawMessage(`{"ctrlPoints": [[0,0,0,1], [0.5,0,3,1], [-0.5,0,7,1], [0,0,10,1]], "stride": 20}`),
			},
			stemSectionID: {
				ID:   stemSectionID,
				Type: ObjectTypePolyline2D,
				Data: raw(map[string]any{"points": circle(0.2, 8)}),
			},
			stemID: {
				ID:       stemID,
				Type:     ObjectTypeExtrusion,
				Name:     "stem",
				Children: []string{stemAxisID, stemSectionID},
				Data:     json.RawMessage(`{"scale": [[1,1], [0.5,0.5]], "solid": true}`),
			},
			barkID: {
				ID:   barkID,
				Type: ObjectTypeTexture2D,
				Data: json.RawMessage(`{"image": {"filename": "bark.png", "repeatS": true, "repeatT": true}, "baseColor": [110,80,50,255]}`),
			},
			leafID: {
				ID:   leafID,
				Type: ObjectTypeBezierPatch,
				Name: "leaf",
				Data: json.RawMessage(`{"ctrlPoints": [
					[[0,-0.1,0,1], [1,-0.6,0.3,1], [2,0,0.2,1]],
					[[0,0,0,1], [1,0,0.5,1], [2.4,0,0.1,1]],
					[[0,0.1,0,1], [1,0.6,0.3,1], [2,0,0.2,1]]
				], "uStride": 8, "vStride": 8}`),
			},
			whorlID: {
				ID:       whorlID,
				Type:     ObjectTypeIFS,
				Name:     "leaf whorl",
				Children: []string{leafID},
				Data:     raw(map[string]any{"depth": 1, "transfos": whorl}),
			},
			topLeafID: {
				ID:       topLeafID,
				Type:     ObjectTypeTranslated,
				Children: []string{leafID},
				Data:     json.RawMessage(`{"translation": [0,0,10]}`),
			},
			greenID: {
				ID:   greenID,
				Type: ObjectTypeMaterial,
				Data: json.RawMessage(`{"ambient": [30,110,30], "diffuse": 1.5}`),
			},
			budSphereID: {
				ID:   budSphereID,
				Type: ObjectTypeSphere,
				Data: json.RawMessage(`{"radius": 0.4}`),
			},
			budScaledID: {
				ID:       budScaledID,
				Type:     ObjectTypeScaled,
				Children: []string{budSphereID},
				Data:     json.RawMessage(`{"scale": [1,1,1.6]}`),
			},
			petalID: {
				ID:   petalID,
				Type: ObjectTypeMaterial,
				Data: json.RawMessage(`{"ambient": [200,60,120]}`),
			},
			budID: {
				ID:   budID,
				Type: ObjectTypeInline,
				Name: "bud",
				Data: raw(map[string]any{
					"id":          40,
					"translation": geom.Vec3{0, 0, 10.5},
					"shapes":      []ShapeRef{{ID: 41, Name: "bud body", Geometry: budScaledID, Appearance: petalID}},
				}),
			},
			crownVerticalID: {
				ID:   crownVerticalID,
				Type: ObjectTypeBezierCurve2D,
				Data: json.RawMessage(`{"ctrlPoints": [[0,0,1], [2.5,1,1], [2,4,1], [0,5,1]]}`),
			},
			crownHorizontalID: {
				ID:   crownHorizontalID,
				Type: ObjectTypePolyline2D,
				Data: raw(map[string]any{"points": circle(2, 12)}),
			},
			crownHullID: {
				ID:       crownHullID,
				Type:     ObjectTypeExtrudedHull,
				Name:     "crown envelope",
				Children: []string{crownVerticalID, crownHorizontalID},
			},
			crownID: {
				ID:       crownID,
				Type:     ObjectTypeTranslated,
				Children: []string{crownHullID},
				Data:     json.RawMessage(`{"translation": [0,0,6]}`),
			},
			crownMatID: {
				ID:   crownMatID,
				Type: ObjectTypeMaterial,
				Data: json.RawMessage(`{"ambient": [60,160,60], "transparency": 0.6}`),
			},
			rootCurveID: {
				ID:   rootCurveID,
				Type: ObjectTypeNurbsCurve,
				Data: json.RawMessage(`{"ctrlPoints": [[0,0,0,1], [0.4,0.2,-0.5,1], [0.2,0.6,-1,1], [0.8,0.5,-1.5,1], [1,1,-2,1]], "degree": 3}`),
			},
			rootID: {
				ID:       rootID,
				Type:     ObjectTypeTapered,
				Name:     "root",
				Children: []string{rootCurveID},
				Data:     json.RawMessage(`{"baseRadius": 1, "topRadius": 0.5}`),
			},
		},
	}
}

func raw(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("document: encode sample data: %v", err))
	}
	return b
}

// circle returns n points of a closed circle of radius r.
func circle(r float64, n int) []geom.Vec2 {
	pts := make([]geom.Vec2, n+1)
	for i := range pts {
		a := float64(i) * 2 * math.Pi / float64(n)
		pts[i] = geom.Vec2{r * math.Cos(a), r * math.Sin(a)}
	}
	return pts
}
