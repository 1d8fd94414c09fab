package provisioning

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingObserver captures events and messages for assertions.
type recordingObserver struct {
	Messages []string
	Events   []Event
}

func (o *recordingObserver) Printf(format string, v ...interface{}) {
	o.Messages = append(o.Messages, fmt.Sprintf(format, v...))
}

func (o *recordingObserver) Debugf(format string, v ...interface{}) {
	o.Messages = append(o.Messages, fmt.Sprintf(format, v...))
}

func (o *recordingObserver) Event(event Event) {
	o.Events = append(o.Events, event)
}

func TestResult_Warnf(t *testing.T) {
	var res Result
	assert.Empty(t, res.Warnings)

	res.Warnf(nil, "rule for %s already exists", "sg-1")
	res.Warnf(errors.New("throttled"), "failed to release %s", "eipalloc-1")

	require.Len(t, res.Warnings, 2)
	assert.Equal(t, "rule for sg-1 already exists", res.Warnings[0].String())
	assert.Equal(t, "failed to release eipalloc-1: throttled", res.Warnings[1].String())
}

func TestResult_Merge(t *testing.T) {
	var a, b Result
	a.Warnf(nil, "first")
	b.Warnf(nil, "second")
	b.Warnf(nil, "third")

	a.Merge(b)
	require.Len(t, a.Warnings, 3)
	assert.Equal(t, "third", a.Warnings[2].Message)
}

func TestResult_LogTo(t *testing.T) {
	var res Result
	res.Warnf(nil, "something recoverable")

	obs := &recordingObserver{}
	res.LogTo(obs, "security")

	require.Len(t, obs.Events, 1)
	assert.Equal(t, EventWarning, obs.Events[0].Type)
	assert.Equal(t, "security", obs.Events[0].Phase)
	assert.Equal(t, "something recoverable", obs.Events[0].Message)
}
