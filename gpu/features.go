package gpu

// DeviceFeatures is the subset of optional device features the engine can
// require and enable.
type DeviceFeatures struct {
	GeometryShader     bool
	TessellationShader bool
	SamplerAnisotropy  bool
	FillModeNonSolid   bool
	WideLines          bool
}

func (f DeviceFeatures) names() []struct {
	name string
	on   bool
} {
	return []struct {
		name string
		on   bool
	}{
		{"geometryShader", f.GeometryShader},
		{"tessellationShader", f.TessellationShader},
		{"samplerAnisotropy", f.SamplerAnisotropy},
		{"fillModeNonSolid", f.FillModeNonSolid},
		{"wideLines", f.WideLines},
	}
}

// Enabled lists the names of the features that are set.
func (f DeviceFeatures) Enabled() []string {
	var out []string
	for _, n := range f.names() {
		if n.on {
			out = append(out, n.name)
		}
	}
	return out
}

// Missing lists the features set in required but not in f.
func (f DeviceFeatures) Missing(required DeviceFeatures) []string {
	have := f.names()
	var out []string
	for i, n := range required.names() {
		if n.on && !have[i].on {
			out = append(out, n.name)
		}
	}
	return out
}
