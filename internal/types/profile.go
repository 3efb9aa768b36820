package types

// Profile is a named set of build settings, stored as a file either in
// the Conan home profiles folder or in a workspace-local directory.
type Profile struct {
	Name  string
	Path  string
	Local bool
}

// Settings mirrors the possible values declared in settings.yml.
type Settings struct {
	Path      string                    `json:"path"`
	OS        map[string]map[string]any `json:"os"`
	Arch      []string                  `json:"arch"`
	Compiler  map[string]map[string]any `json:"compiler"`
	BuildType []string                  `json:"build_type"`
}
