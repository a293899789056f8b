package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrConfigLoad, "could not load")

	assert.Equal(t, ErrConfigLoad, err.Code)
	assert.Equal(t, "[CONFIG_LOAD] could not load", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("file missing")
	err := Wrap(cause, ErrConfigLoad, "could not load")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "file missing")
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrConfigLoad, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrConfigLoad, "ignored %d", 1))
}

func TestIsErrorCode(t *testing.T) {
	err := Newf(ErrRuleInvalid, "rule %d broken", 3)

	assert.True(t, IsErrorCode(err, ErrRuleInvalid))
	assert.False(t, IsErrorCode(err, ErrConfigLoad))
	assert.False(t, IsErrorCode(stderrors.New("plain"), ErrRuleInvalid))
}

func TestIsErrorCodeThroughWrapping(t *testing.T) {
	inner := New(ErrConfigParse, "bad toml")
	outer := fmt.Errorf("loading: %w", inner)

	assert.True(t, IsErrorCode(outer, ErrConfigParse))
	assert.Equal(t, ErrConfigParse, GetErrorCode(outer))
}

func TestGetErrorCodeFallsBackToUnknown(t *testing.T) {
	assert.Equal(t, ErrUnknown, GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrRuleInvalid, "broken").WithDetail("index", 3)
	assert.Equal(t, 3, err.Details["index"])
}
