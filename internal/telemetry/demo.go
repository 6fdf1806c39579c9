package telemetry

import (
	"math"
	"math/rand"
)

const (
	demoApogee      = 725.0 // m
	demoAscentShare = 0.2   // fraction of the flight spent climbing
	seaLevelHPa     = 1013.25
)

// Demo generates a synthetic flight: a short powered ascent, apogee, then a
// parachute descent back to the ground. The same seed always yields the
// same table, which lets the dashboard run without a CSV or a payload.
func Demo(rows int, seed int64) *Table {
	if rows <= 0 {
		return Empty()
	}
	rng := rand.New(rand.NewSource(seed))

	ascentRows := int(float64(rows) * demoAscentShare)
	if ascentRows < 1 {
		ascentRows = 1
	}

	out := make([]Row, rows)
	for i := range out {
		alt := demoAltitude(i, rows, ascentRows)
		noise := func(scale float64) float64 { return (rng.Float64() - 0.5) * scale }

		var acc, spin float64
		if i < ascentRows {
			// Motor burn and coast: high load, little rotation
			acc = 9.81 + 25*math.Exp(-float64(i)/3) + noise(1.5)
			spin = 5 + noise(2)
		} else {
			// Under canopy the payload swings and spins
			t := float64(i - ascentRows)
			acc = 9.81 + 1.2*math.Sin(t*0.7) + noise(0.8)
			spin = 40 + 15*math.Sin(t*0.3) + noise(6)
		}

		out[i] = Row{
			Altitude:     round2(alt + noise(0.6)),
			Pressure:     round2(pressureAt(alt) + noise(0.3)),
			Voltage:      round2(5.0 - 0.4*float64(i)/float64(rows) + noise(0.02)),
			GyroR:        round2(spin),
			AccR:         round2(acc),
			GNSSAltitude: round2(alt + 2 + noise(4)),
		}
	}

	return NewTable(Channels[:], out)
}

func demoAltitude(i, rows, ascentRows int) float64 {
	if i < ascentRows {
		// Ease-out climb to apogee
		p := float64(i+1) / float64(ascentRows)
		return demoApogee * (1 - (1-p)*(1-p))
	}
	descentRows := rows - ascentRows
	p := float64(i-ascentRows+1) / float64(descentRows)
	return math.Max(0, demoApogee*(1-p))
}

// pressureAt applies the standard barometric formula.
func pressureAt(alt float64) float64 {
	return seaLevelHPa * math.Pow(1-2.25577e-5*alt, 5.25588)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
