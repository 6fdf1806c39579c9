package telemetry

import "testing"

func TestDemoIsCompleteAndDeterministic(t *testing.T) {
	a := Demo(60, 7)
	b := Demo(60, 7)
	if a.Len() != 60 {
		t.Fatalf("rows = %d, want 60", a.Len())
	}
	for i := 0; i < a.Len(); i++ {
		sa, err := a.Sample(i)
		if err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
		sb, _ := b.Sample(i)
		if sa != sb {
			t.Fatalf("row %d differs between runs with the same seed", i)
		}
	}
}

func TestDemoFlightProfile(t *testing.T) {
	tbl := Demo(100, 1)

	var peak float64
	var peakRow int
	for i := 0; i < tbl.Len(); i++ {
		v, _ := tbl.Value(i, Altitude)
		if v > peak {
			peak, peakRow = v, i
		}
	}
	if peak < demoApogee*0.9 {
		t.Errorf("apogee = %.1f, want near %.1f", peak, demoApogee)
	}
	if peakRow == 0 || peakRow == tbl.Len()-1 {
		t.Errorf("apogee at row %d, want mid-flight", peakRow)
	}

	last, _ := tbl.Value(tbl.Len()-1, Altitude)
	if last > 5 {
		t.Errorf("landing altitude = %.1f, want ~0", last)
	}

	pTop, _ := tbl.Value(peakRow, Pressure)
	pGround, _ := tbl.Value(tbl.Len()-1, Pressure)
	if pTop >= pGround {
		t.Errorf("pressure at apogee %.1f should be below ground %.1f", pTop, pGround)
	}
}

func TestDemoZeroRows(t *testing.T) {
	if Demo(0, 1).Len() != 0 {
		t.Fatal("want empty table")
	}
}
