package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagModel      = flag.String("model", "", "Path to the .gltf document")
	flagExclude    = optionalStringFlag("exclude", "Mesh name to skip (-exclude= disables exclusion)")
	flagTexCoords  = flag.Bool("texcoords", false, "Also upload TEXCOORD_0")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// optionalString is a string flag that records whether it was given, so an
// explicit empty value differs from an absent flag.
type optionalString struct {
	value string
	set   bool
}

func optionalStringFlag(name, usage string) *optionalString {
	s := &optionalString{}
	flag.Var(s, name, usage)
	return s
}

func (s *optionalString) String() string { return s.value }

func (s *optionalString) Set(v string) error {
	s.value = v
	s.set = true
	return nil
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagModel != "" {
		cfg.Assets.Document = *flagModel
	}
	if flagExclude.set {
		cfg.Assets.Exclude = flagExclude.value
	}
	if *flagTexCoords {
		cfg.Assets.TexCoords = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
