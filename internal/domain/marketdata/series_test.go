package marketdata

import (
	"math"
	"testing"
	"time"
)

func obs(day int, close float64) Observation {
	return Observation{
		Date:  time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Close: close,
	}
}

func TestSeries_Validate(t *testing.T) {
	t.Run("Valid With Gaps", func(t *testing.T) {
		s := Series{obs(0, 10), obs(1, 11), obs(4, 12)}
		if err := s.Validate(); err != nil {
			t.Errorf("gaps are allowed: %v", err)
		}
	})

	t.Run("Equal Dates Allowed", func(t *testing.T) {
		s := Series{obs(0, 10), obs(0, 11)}
		if err := s.Validate(); err != nil {
			t.Errorf("non-decreasing dates are allowed: %v", err)
		}
	})

	t.Run("Out Of Order", func(t *testing.T) {
		s := Series{obs(3, 10), obs(1, 11)}
		err := s.Validate()
		if err == nil || !IsValidationError(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("NaN Close", func(t *testing.T) {
		s := Series{obs(0, math.NaN())}
		if err := s.Validate(); err == nil {
			t.Error("expected validation error for NaN")
		}
	})

	t.Run("Zero Date", func(t *testing.T) {
		s := Series{{Close: 1}}
		if err := s.Validate(); err == nil {
			t.Error("expected validation error for zero date")
		}
	})
}

func TestSeries_Helpers(t *testing.T) {
	s := Series{obs(0, 10), obs(1, 12)}

	closes := s.Closes()
	if len(closes) != 2 || closes[0] != 10 || closes[1] != 12 {
		t.Errorf("unexpected closes: %v", closes)
	}

	last, ok := s.Last()
	if !ok || last.Close != 12 {
		t.Errorf("unexpected last: %+v ok=%v", last, ok)
	}

	if _, ok := (Series)(nil).Last(); ok {
		t.Error("empty series must report no last observation")
	}
}
