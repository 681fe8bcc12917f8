package light

// LightType identifies the kind of light source. The numeric values are part of
// the GPU contract: they are written verbatim into the light storage buffer and
// switched on inside the fragment shader.
type LightType uint32

const (
	// LightTypePoint represents a light that emits in all directions from a position.
	// Used for bare bulbs, lanterns, and torch flames. Attenuates with distance
	// using a quadratic falloff.
	LightTypePoint LightType = iota

	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon. Affects all fragments
	// uniformly with no distance attenuation.
	LightTypeDirectional

	// LightTypeSpot represents a light that emits in a cone from a position along
	// a direction. Used for flashlights, lamps, and wall sconces. Attenuates with
	// distance and fades out smoothly near the cone edge.
	LightTypeSpot
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  [3]float32
	direction [3]float32
	color     [3]float32
	intensity float32
	cutoff    float32 // stored as cos(cone half-angle), spot lights only
	enabled   bool
}

// Light defines the interface for a light source in the scene.
//
// Lights contribute to the final pixel color during the lit forward pass.
// All light types (point, directional, spot) share this interface;
// type-specific properties (e.g. the cone cutoff for spot lights) return
// zero values when not applicable.
//
// Lights are marshaled into a GPU storage buffer each frame via the
// gpu_types helpers; only the first count entries of that buffer are
// evaluated by the shader.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (point, directional, or spot)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the normalized direction of the light.
	// For directional lights this is the direction light travels. For spot
	// lights this is the cone axis pointing away from the light. Meaningless
	// for point lights.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Cutoff returns the cosine of the cone half-angle for spot lights.
	// Fragments whose angle from the cone axis has a cosine at or below this
	// value receive zero energy from the spot. Meaningless for point and
	// directional lights.
	//
	// Returns:
	//   - float32: cos(cone half-angle)
	Cutoff() float32

	// Enabled returns whether this light is active for rendering.
	// Disabled lights are skipped during GPU buffer marshaling.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetCutoff sets the spot cone half-angle. The angle is specified in
	// degrees and stored internally as its cosine, which is the format the
	// shader compares against.
	//
	// Parameters:
	//   - deg: cone half-angle in degrees
	SetCutoff(deg float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (point, directional, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		position:  [3]float32{0, 0, 0},
		direction: [3]float32{0, -1, 0},
		color:     [3]float32{1, 1, 1},
		intensity: 1.0,
		cutoff:    0.9063, // cos(25°)
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Cutoff() float32 {
	return l.cutoff
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.direction = normalize3(x, y, z)
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetCutoff(deg float32) {
	l.cutoff = cosDeg(deg)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
