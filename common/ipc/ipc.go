package ipc

// TODO: Expose these over a socket so that tool mode can query a running compositor instead of only its config

type (
	// A single surface as the compositor currently sees it
	SurfaceInfo struct {
		// Transport identity, formatted for display
		Identity string `json:"identity" yaml:"identity"`
		// Arena handle of the surface
		Handle string `json:"handle" yaml:"handle"`
		// Render layer, "none" if the surface was never classified
		Layer string `json:"layer" yaml:"layer"`
		// Bound shell kind
		Shell string `json:"shell" yaml:"shell"`
		// Window title, only known for shells that report one
		Title   string `json:"title,omitempty" yaml:"title,omitempty"`
		Primary bool   `json:"primary" yaml:"primary"`
		Cursor  bool   `json:"cursor" yaml:"cursor"`
	}

	// Point in time view of the surface state
	Snapshot struct {
		// All registered surfaces in registration order
		Surfaces []SurfaceInfo `json:"surfaces" yaml:"surfaces"`
		// Identities of the drawable surfaces, back to front
		DrawOrder []string `json:"draw_order" yaml:"draw_order"`
	}

	// A mode an output supports
	OutputMode struct {
		// Mode height in pixel
		Height int `json:"height" yaml:"height"`
		// Mode width in pixel
		Width int `json:"width" yaml:"width"`
		// Refresh rate of the mode in millihertz
		RefreshRate int `json:"refresh_rate" yaml:"refresh_rate"`
	}

	// An output and where it sits in the layout
	OutputInfo struct {
		Name string     `json:"name" yaml:"name"`
		X    int        `json:"x" yaml:"x"`
		Y    int        `json:"y" yaml:"y"`
		Mode OutputMode `json:"mode" yaml:"mode"`
	}
)
