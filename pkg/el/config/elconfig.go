package config

// Settings holds the EL-specific knobs read out of a generic Config: the
// regex_enabled capability flag and an optional function allow-list used to
// restrict which builtins a given processor property may invoke. Decimal
// division precision is fixed and is not configurable.
type Settings struct {
	RegexEnabled     bool
	AllowedFunctions []string // empty means "all registered functions allowed"
}

// LoadSettings extracts EL Settings from cfg, defaulting RegexEnabled to
// true when the key is absent.
func LoadSettings(cfg Config) Settings {
	return Settings{
		RegexEnabled:     cfg.Bool("regex_enabled", true),
		AllowedFunctions: cfg.StringSlice("allowed_functions", nil),
	}
}

// Allows reports whether name may be called under these settings. An empty
// allow-list permits every registered function.
func (s Settings) Allows(name string) bool {
	if len(s.AllowedFunctions) == 0 {
		return true
	}
	for _, allowed := range s.AllowedFunctions {
		if allowed == name {
			return true
		}
	}
	return false
}
