package result

import "errors"

// stubReader returns t*scale for each output, where t is set by the test.
type stubReader struct {
	names []string
	t     float64
	fail  bool
}

func (s *stubReader) OutputNames() []string { return s.names }

func (s *stubReader) Outputs() ([]float64, error) {
	if s.fail {
		return nil, errors.New("slave not initialized")
	}
	out := make([]float64, len(s.names))
	for i := range out {
		out[i] = s.t * float64(i+1)
	}
	return out, nil
}

// writeAt advances the reader to t and writes a sample.
func writeAt(w Writer, r *stubReader, t float64) error {
	r.t = t
	return w.Write(t)
}
