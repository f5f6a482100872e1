package halftone

// FragmentSource is the fragment program body. inputBuffer is the previous
// pass's colour texture; mainImage follows the post-processing effect entry
// point convention.
const FragmentSource = `uniform float uGridSize;
uniform float uRadius;
uniform float uSoftness;
uniform float uMode;
uniform float uStagger;
uniform float uColorMode;
uniform vec2 uResolution;
uniform float uIntensity;

float dotMask(float r, float d) {
	return 1.0 - smoothstep(r - uSoftness, r + uSoftness, d);
}

void mainImage(const in vec4 inputColor, const in vec2 uv, out vec4 outputColor) {
	vec2 cell = vec2(uGridSize / uResolution.x, uGridSize / uResolution.y);

	vec2 p = uv;
	float row = floor(p.y / cell.y);
	if (uStagger > 0.5 && mod(row, 2.0) == 1.0) {
		p.x += cell.x * 0.5;
	}

	vec2 center = floor(p / cell) * cell + cell * 0.5;
	vec4 sampled = texture2D(inputBuffer, center);
	float luma = dot(vec3(0.2126, 0.7152, 0.0722), sampled.rgb);

	float d = length(fract(p / cell) - 0.5);
	float r = uRadius * luma;
	vec3 ink = uColorMode > 0.5 ? vec3(luma) : sampled.rgb;

	int mode = int(uMode + 0.5);
	float mask;
	if (mode == 0) {
		mask = dotMask(r, d);
	} else if (mode == 1) {
		mask = dotMask(r, d) - dotMask(r * 0.5, d);
	} else if (luma < 0.4) {
		vec3 square = mix(ink, vec3(0.0), dotMask(r, d));
		outputColor = mix(inputColor, vec4(square, 1.0), uIntensity);
		return;
	} else {
		mask = dotMask(r, d);
	}

	outputColor = mix(inputColor, vec4(ink * mask, inputColor.a), uIntensity);
}
`
