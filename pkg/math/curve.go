package math

// Stage is one band of a piecewise curve. Within [From, To) of the global
// progress the value moves from Start to End along Ease.
type Stage struct {
	From, To   float32
	Start, End float32
	Ease       EaseFunc
}

// Curve is an ordered list of non-overlapping stages covering a progress range.
type Curve []Stage

// Eval returns the curve value at progress p. Progress before the first stage
// yields the first Start, progress past the last stage yields the last End.
func (c Curve) Eval(p float32) float32 {
	if len(c) == 0 {
		return 0
	}
	if p <= c[0].From {
		return c[0].Start
	}
	for _, s := range c {
		if p >= s.To {
			continue
		}
		if p < s.From {
			// Gap between stages: hold the next stage's start.
			return s.Start
		}
		return s.at(p)
	}
	return c[len(c)-1].End
}

func (s Stage) at(p float32) float32 {
	span := s.To - s.From
	if span <= 0 {
		return s.End
	}
	t := Clamp01((p - s.From) / span)
	if s.Ease != nil {
		t = s.Ease(t)
	}
	return Lerp(s.Start, s.End, t)
}

// Hold is a stage that keeps a constant value.
func Hold(from, to, value float32) Stage {
	return Stage{From: from, To: to, Start: value, End: value}
}

// Ramp is a linear stage.
func Ramp(from, to, start, end float32) Stage {
	return Stage{From: from, To: to, Start: start, End: end, Ease: Linear}
}
