package imaging

import "math"

// Metrics holds the three perceptual summary statistics computed from a
// pixel buffer. Each value is a percentage in [0, 100] rounded to two
// decimal places. A Metrics value is produced fresh per request and never
// mutated after construction.
type Metrics struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
}

// ComputeMetrics reduces a buffer to its brightness, contrast, and
// saturation averages.
//
// Per pixel (R, G, B):
//   - brightness sample: (R+G+B)/3
//   - contrast sample:   max(R,G,B) - min(R,G,B)
//   - saturation sample: (max-min)/(sum/3) when sum > 0, else 0
//
// Brightness and contrast averages are normalized against the 255 value
// range; saturation is the plain sample average. All three are scaled to
// percentages and clamped into [0, 100] (a fully saturated primary pixel
// would otherwise exceed the scale).
//
// Fails with *InvalidImageError when the buffer has a zero pixel count.
// No other validation is performed: the canonical buffer format guarantees
// unsigned 0-255 channel values.
func ComputeMetrics(buf *Buffer) (*Metrics, error) {
	if buf == nil || buf.PixelCount() == 0 {
		return nil, &InvalidImageError{Reason: "zero pixel count"}
	}

	var brightSum, contrastSum, satSum float64
	for i := 0; i < len(buf.Pix); i += channels {
		r := float64(buf.Pix[i])
		g := float64(buf.Pix[i+1])
		b := float64(buf.Pix[i+2])

		maxC := math.Max(r, math.Max(g, b))
		minC := math.Min(r, math.Min(g, b))
		sum := r + g + b

		brightSum += sum / 3
		contrastSum += maxC - minC
		if sum > 0 {
			satSum += (maxC - minC) / (sum / 3)
		}
	}

	n := float64(buf.PixelCount())
	return &Metrics{
		Brightness: round2(clampPercent(brightSum / n / 255 * 100)),
		Contrast:   round2(clampPercent(contrastSum / n / 255 * 100)),
		Saturation: round2(clampPercent(satSum / n * 100)),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
