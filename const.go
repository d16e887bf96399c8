package hdrio

// ITU-R BT.709 luminance weights.
const (
	lumR = 0.212671
	lumG = 0.715160
	lumB = 0.072169
)

const (
	// lumEpsilon is the luminance below which a pixel counts as black and
	// is excluded from the auto-exposure reduction.
	lumEpsilon = 1e-7
	// autoExposureKey is the mid-gray luminance the scene log-average is
	// mapped onto.
	autoExposureKey = 0.18
	// displayGamma is the transfer exponent used when tone mapping to bytes.
	displayGamma = 2.2
)

const (
	exrMagic = 20000630
)

// maxDecodePixels caps the pixel count a decoder will allocate for.
// Headers declaring more are corrupt; the bound also keeps the element
// count well inside int range on 32-bit platforms.
const maxDecodePixels = 1 << 28
