package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	err := InvalidTiming("end %d before start %d", 10, 20)
	assert.Equal(t, ETIMING, Code(err))
	assert.True(t, Is(err, ETIMING))
	assert.False(t, Is(err, EINVALID))
	assert.Equal(t, "end 10 before start 20", UserMessage(err))
	assert.Contains(t, err.Error(), "[126]")
}

func TestWrappedErrorKeepsCode(t *testing.T) {
	inner := Unsupported("styles not supported")
	outer := fmt.Errorf("reading style sheet: %w", inner)
	assert.Equal(t, EUNSUPPORTED, Code(outer))
	plain := errors.New("something")
	assert.Equal(t, EINTERNAL, Code(plain))
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
}

func TestWrapNil(t *testing.T) {
	err := WrapError(nil, EMISSING, "no width for %q", "syllable")
	assert.Equal(t, EMISSING, Code(err))
	assert.Equal(t, "missing data", errors.Unwrap(err).Error())
	err = ErrorWithCode(nil, EREDEFINED)
	assert.Equal(t, "environment redefinition", UserMessage(err))
}
