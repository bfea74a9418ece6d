package process

import "github.com/pkg/errors"

// Stage names the pipeline step that produced a Fatal.
type Stage string

const (
	StageLocate    Stage = "locate"
	StageAcquire   Stage = "acquire"
	StageEnumerate Stage = "enumerate"
)

// Fatal is an unrecoverable discovery failure. The driver turns it into exit
// status 1; nothing retries it.
type Fatal struct {
	Stage Stage
	Msg   string
	Err   error
}

func (f *Fatal) Error() string {
	if f.Err != nil {
		return string(f.Stage) + ": " + f.Msg + ": " + f.Err.Error()
	}
	return string(f.Stage) + ": " + f.Msg
}

func (f *Fatal) Unwrap() error { return f.Err }

// AsFatal reports whether err carries a *Fatal and returns it.
func AsFatal(err error) (*Fatal, bool) {
	var f *Fatal
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
