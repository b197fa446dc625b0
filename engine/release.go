package engine

import "github.com/sirupsen/logrus"

type release struct {
	name string
	fn   func()
}

// releaseStack holds release functions for acquired handles. unwind calls
// them newest first.
type releaseStack []release

func (s *releaseStack) push(name string, fn func()) {
	*s = append(*s, release{name: name, fn: fn})
}

func (s *releaseStack) unwind(log logrus.FieldLogger) {
	for i := len(*s) - 1; i >= 0; i-- {
		r := (*s)[i]
		log.WithField("handle", r.name).Debug("Releasing")
		r.fn()
	}
	*s = nil
}

func (s releaseStack) names() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.name
	}
	return out
}
