package builder

// Device is one authoring viewport. WidthMedia is the min-width at which the
// device's styles apply; the default device has none.
type Device struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Width      string `json:"width,omitempty"`
	WidthMedia string `json:"widthMedia,omitempty"`
}

type Config struct {
	Autoload       bool     `json:"autoload"`
	Autosave       bool     `json:"autosave"`
	MediaCondition string   `json:"mediaCondition"`
	DefaultDevice  string   `json:"defaultDevice"`
	Devices        []Device `json:"devices"`
}

// DefaultDevices lists viewports narrowest first; wider ones layer on top
// through min-width media queries.
func DefaultDevices() []Device {
	return []Device{
		{ID: "mobile", Name: "Mobile", Width: "375px"},
		{ID: "tablet", Name: "Tablet", Width: "768px", WidthMedia: "768px"},
		{ID: "desktop", Name: "Desktop", WidthMedia: "992px"},
	}
}

// NewConfig builds the editor configuration for a session. Storage autoload
// is on only when the host did not seed the editor itself; autosave is
// always off.
func NewConfig(seeded bool) Config {
	devices := DefaultDevices()
	return Config{
		Autoload:       !seeded,
		Autosave:       false,
		MediaCondition: "min-width",
		DefaultDevice:  devices[0].ID,
		Devices:        devices,
	}
}
