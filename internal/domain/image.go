package domain

import (
	"encoding/json"
	"fmt"
)

// DefaultPlaceholder is the bundled asset shown when a record has no image.
const DefaultPlaceholder = "static/nope.png"

// ImageReference is either a LocalImage or a RemoteImage, never both.
// The interface is sealed; use MatchImage or a type switch over the two variants.
type ImageReference interface {
	isImageReference()
}

// LocalImage points at a bundled placeholder resource.
type LocalImage struct {
	Resource string
}

// RemoteImage points at a hosted image.
type RemoteImage struct {
	URI string
}

func (LocalImage) isImageReference()  {}
func (RemoteImage) isImageReference() {}

func (l LocalImage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string `json:"kind"`
		Resource string `json:"resource"`
	}{"local", l.Resource})
}

func (r RemoteImage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		URI  string `json:"uri"`
	}{"remote", r.URI})
}

// MatchImage dispatches on the variant of ref. Both branches are required.
func MatchImage[R any](ref ImageReference, local func(LocalImage) R, remote func(RemoteImage) R) R {
	switch v := ref.(type) {
	case LocalImage:
		return local(v)
	case RemoteImage:
		return remote(v)
	default:
		panic(fmt.Sprintf("domain: unknown image reference %T", ref))
	}
}

// ImageResolver maps a nullable remote path to an ImageReference.
type ImageResolver struct {
	Placeholder string
}

// NewImageResolver uses placeholder for missing images, or DefaultPlaceholder when it is empty.
func NewImageResolver(placeholder string) ImageResolver {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return ImageResolver{Placeholder: placeholder}
}

// Resolve never fails. A nil path yields the placeholder and ignores baseURL;
// otherwise baseURL and path are concatenated as-is, without escaping.
func (r ImageResolver) Resolve(path *string, baseURL string) ImageReference {
	if path == nil {
		return LocalImage{Resource: r.Placeholder}
	}
	return RemoteImage{URI: baseURL + *path}
}
