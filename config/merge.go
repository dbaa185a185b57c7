package config

// mergeConfigs overlays override onto base. Scalars win when set, lists
// replace wholesale when non-empty, and extension maps merge one level deep.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}

	if override.Shell.Title != "" {
		result.Shell.Title = override.Shell.Title
	}
	if override.Shell.NotFound != "" {
		result.Shell.NotFound = override.Shell.NotFound
	}

	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Server.Socket != "" {
		result.Server.Socket = override.Server.Socket
	}
	if override.Server.ShutdownTimeout != "" {
		result.Server.ShutdownTimeout = override.Server.ShutdownTimeout
	}
	if override.Server.Metrics != nil {
		result.Server.Metrics = override.Server.Metrics
	}

	if override.TUI.Theme != "" {
		result.TUI.Theme = override.TUI.Theme
	}
	if override.TUI.Icons != "" {
		result.TUI.Icons = override.TUI.Icons
	}

	if len(override.Services) > 0 {
		result.Services = append([]ServiceEntry(nil), override.Services...)
	}
	if len(override.Knowledge.Sources) > 0 {
		result.Knowledge.Sources = append([]KnowledgeSource(nil), override.Knowledge.Sources...)
	}

	if override.Watch.Enabled != nil {
		result.Watch.Enabled = override.Watch.Enabled
	}
	if override.Watch.DebounceMs != 0 {
		result.Watch.DebounceMs = override.Watch.DebounceMs
	}

	if override.Extensions != nil {
		merged := make(map[string]interface{}, len(result.Extensions)+len(override.Extensions))
		for k, v := range result.Extensions {
			merged[k] = v
		}
		for key, value := range override.Extensions {
			if baseMap, ok := merged[key].(map[string]interface{}); ok {
				if overrideMap, ok := value.(map[string]interface{}); ok {
					mergedMap := make(map[string]interface{}, len(baseMap)+len(overrideMap))
					for k, v := range baseMap {
						mergedMap[k] = v
					}
					for k, v := range overrideMap {
						mergedMap[k] = v
					}
					merged[key] = mergedMap
					continue
				}
			}
			merged[key] = value
		}
		result.Extensions = merged
	}

	return &result
}
