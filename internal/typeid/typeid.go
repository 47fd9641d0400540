package typeid

import (
	"errors"
	"fmt"

	"go.jetify.com/typeid/v2"
)

var ErrInvalid = errors.New("invalid id")

const (
	PrefixScene  = "scene"
	PrefixObject = "obj"
	PrefixJob    = "job"
	PrefixAsset  = "asset"
	PrefixReport = "rep"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewSceneID() string  { return New(PrefixScene) }
func NewObjectID() string { return New(PrefixObject) }
func NewJobID() string    { return New(PrefixJob) }
func NewAssetID() string  { return New(PrefixAsset) }
func NewReportID() string { return New(PrefixReport) }

// Validate reports ErrInvalid unless id is a typeid with the given prefix.
func Validate(id, prefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalid, id, err)
	}
	if parsed.Prefix() != prefix {
		return fmt.Errorf("%w: %q is not a %s id", ErrInvalid, id, prefix)
	}
	return nil
}
