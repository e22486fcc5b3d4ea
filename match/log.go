package match

import "github.com/sirupsen/logrus"

// log is the package-level logger: squares-enumeration stats at Debug,
// solver non-convergence at Warn, and solver-construction or refine failures
// at Error. Sparsification itself logs nothing. It defaults to logrus's
// standard logger at Info level, so the Debug messages are silent unless a
// caller opts in while the Warn/Error messages are printed; SetLogger lets an
// embedding application redirect it to its own *logrus.Entry.
var log = logrus.NewEntry(logrus.StandardLogger())

// SetLogger replaces the package logger, e.g. to attach request-scoped
// fields or redirect to an application's own logrus instance.
func SetLogger(entry *logrus.Entry) {
	if entry != nil {
		log = entry
	}
}
