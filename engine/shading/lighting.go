package shading

import (
	"github.com/ember-gfx/ember-go/engine/light"
)

// ambientLight is the constant ambient term every fragment receives before
// any per-light contribution.
var ambientLight = [3]float32{0.1, 0.1, 0.1}

// LightEnvironment is the bound light state for a frame: the full light
// buffer plus the count of entries that are live. Entries past Count are
// never read, so a buffer with stale data in its tail accumulates the same
// result as a freshly truncated one.
type LightEnvironment struct {
	Lights []light.GPULight
	Count  uint32
}

// Accumulate sums the lighting at a world-space point with the given surface
// normal. The result starts at the ambient term and adds each live light's
// contribution according to its type:
//
//   - point lights attenuate with distance as 1/(1 + 0.09d + 0.032d^2) and
//     scale by the lambert term against the direction toward the light
//   - directional lights have no position and no attenuation; the lambert
//     term is taken against the negated light direction
//   - spot lights behave like point lights inside their cone, with a
//     smoothstep band of width 0.1 above the cutoff cosine softening the
//     cone edge, and contribute nothing at or below the cutoff
//
// Parameters:
//   - fragPos: the fragment's world-space position
//   - normal: the fragment's unit surface normal
//
// Returns:
//   - [3]float32: the accumulated RGB light intensity
func (e LightEnvironment) Accumulate(fragPos, normal [3]float32) [3]float32 {
	accum := ambientLight

	count := int(e.Count)
	if count > len(e.Lights) {
		count = len(e.Lights)
	}

	for i := 0; i < count; i++ {
		accum = add3(accum, lightContribution(e.Lights[i], fragPos, normal))
	}
	return accum
}

func lightContribution(l light.GPULight, fragPos, normal [3]float32) [3]float32 {
	switch l.LightType {
	case uint32(light.LightTypePoint):
		toLight := sub3(l.Position, fragPos)
		distance := length3(toLight)
		lightDir := normalize3(toLight)
		attenuation := 1.0 / (1.0 + 0.09*distance + 0.032*distance*distance)
		diff := max(dot3(normal, lightDir), 0)
		return scale3(l.Color, diff*attenuation*l.Intensity)
	case uint32(light.LightTypeDirectional):
		lightDir := scale3(normalize3(l.Direction), -1)
		diff := max(dot3(normal, lightDir), 0)
		return scale3(l.Color, diff*l.Intensity)
	case uint32(light.LightTypeSpot):
		toLight := sub3(l.Position, fragPos)
		distance := length3(toLight)
		lightDir := normalize3(toLight)
		spotEffect := dot3(lightDir, normalize3(l.Direction))
		if spotEffect <= l.Cutoff {
			return [3]float32{0, 0, 0}
		}
		attenuation := 1.0 / (1.0 + 0.09*distance + 0.032*distance*distance)
		band := smoothstep(l.Cutoff, l.Cutoff+0.1, spotEffect)
		diff := max(dot3(normal, lightDir), 0)
		return scale3(l.Color, diff*band*attenuation*l.Intensity)
	default:
		return [3]float32{0, 0, 0}
	}
}
