package pipeline

import "strings"

const errPrefix = "ERROR:"

// Failure is the typed form of every pipeline error. It only becomes an
// "ERROR: ..." string at the outermost boundary, via Tagged.
type Failure struct {
	Msg string
}

func (f *Failure) Error() string { return f.Msg }

func fail(msg string) *Failure { return &Failure{Msg: msg} }

var (
	failUnrecognized  = fail("ERROR: Could not recognize a valid expression in the image.")
	failExtractComm   = fail("ERROR: Failed to communicate with the AI model for extraction.")
	failComputeComm   = fail("ERROR: Failed to communicate with the AI model for evaluation.")
	failInvalidChars  = fail("ERROR: Expression contains invalid characters.")
	failOperatorSeq   = fail("ERROR: Invalid operator sequence.")
	failCalcNumber    = fail("ERROR: Calculation resulted in an invalid number.")
	failMalformed     = fail("ERROR: Invalid or unrecognized mathematical expression.")
	failNumericFormat = fail("ERROR: AI returned an invalid numerical format.")
)

// Tagged renders an error as the string-tagged boundary form.
func Tagged(err error) string {
	if f, ok := err.(*Failure); ok {
		return f.Msg
	}
	return errPrefix + " " + err.Error()
}

// IsTagged reports whether a boundary string is the failure channel.
func IsTagged(s string) bool {
	return strings.HasPrefix(s, errPrefix)
}
