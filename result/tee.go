package result

// Writer records one sample at simulation time t.
type Writer interface {
	Write(t float64) error
}

// Tee fans a sample out to several writers in order. The first failure
// stops the fan-out and is returned.
type Tee []Writer

func (t Tee) Write(ts float64) error {
	for _, w := range t {
		if err := w.Write(ts); err != nil {
			return err
		}
	}
	return nil
}
