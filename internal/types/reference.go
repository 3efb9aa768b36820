package types

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// PackageReference identifies a recipe: name/version with optional
// user/channel and an optional resolved revision. It is a value type;
// two references are equal when all fields are equal.
type PackageReference struct {
	Name     string
	Version  string
	User     string
	Channel  string
	Revision string
}

// BinaryReference pairs a recipe reference with the package id computed
// for a concrete set of build settings.
type BinaryReference struct {
	Ref       PackageReference
	PackageID string
}

// ParsePackageReference parses "name/version[@user[/channel]][#revision]".
func ParsePackageReference(value string) (PackageReference, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return PackageReference{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package reference is empty")
	}
	ref := PackageReference{}
	if idx := strings.Index(trimmed, "#"); idx >= 0 {
		ref.Revision = trimmed[idx+1:]
		trimmed = trimmed[:idx]
	}
	if idx := strings.Index(trimmed, "@"); idx >= 0 {
		userChannel := trimmed[idx+1:]
		trimmed = trimmed[:idx]
		if slash := strings.Index(userChannel, "/"); slash >= 0 {
			ref.User = userChannel[:slash]
			ref.Channel = userChannel[slash+1:]
		} else {
			ref.User = userChannel
		}
	}
	slash := strings.Index(trimmed, "/")
	if slash <= 0 || slash == len(trimmed)-1 {
		return PackageReference{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("malformed package reference %q", value))
	}
	ref.Name = trimmed[:slash]
	ref.Version = trimmed[slash+1:]
	return ref, nil
}

func (r PackageReference) String() string {
	var builder strings.Builder
	builder.WriteString(r.Name)
	builder.WriteString("/")
	builder.WriteString(r.Version)
	if r.User != "" {
		builder.WriteString("@")
		builder.WriteString(r.User)
		if r.Channel != "" {
			builder.WriteString("/")
			builder.WriteString(r.Channel)
		}
	}
	if r.Revision != "" {
		builder.WriteString("#")
		builder.WriteString(r.Revision)
	}
	return builder.String()
}

// WithoutRevision returns a copy with the revision cleared. Recipe-level
// availability probes always run at the unrevisioned reference.
func (r PackageReference) WithoutRevision() PackageReference {
	r.Revision = ""
	return r
}

func (r PackageReference) HasRevision() bool {
	return r.Revision != ""
}

func (b BinaryReference) String() string {
	return fmt.Sprintf("%s:%s", b.Ref.String(), b.PackageID)
}
