package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"pollsim/domain/core"
)

func TestWrapClassifiesInvalidParameter(t *testing.T) {
	cause := core.NewInvalidParameterError("sampleSize", 0, "must be at least 1")
	err := Wrap(cause, "taking poll")

	assert.Equal(t, CodeInvalidParameter, GetCode(err))
	assert.Equal(t, "taking poll: invalid parameter sampleSize=0: must be at least 1", err.Error())
	assert.True(t, core.IsInvalidParameter(err))
}

func TestWrapKeepsAppErrorCode(t *testing.T) {
	err := Wrapf(ConfigInvalid("POLL_SEED must be an integer"), "loading %s", "config")
	assert.Equal(t, CodeConfigInvalid, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "loading config: POLL_SEED must be an integer", err.Error())
}

func TestWrapDefaults(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))

	err := Wrap(stderrors.New("disk full"), "writing workbook")
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
	assert.False(t, IsAppError(stderrors.New("plain")))
}

func TestIOError(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := IOError("failed to open workbook", cause)
	assert.Equal(t, CodeIOError, err.Code)
	assert.ErrorIs(t, err, cause)
}
