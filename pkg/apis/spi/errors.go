package spi

import (
	"errors"
	"fmt"
)

// AlreadyDeployedError is returned when an app with the same deployment id
// already reports a state other than unknown.
type AlreadyDeployedError struct {
	ID string
}

func NewAlreadyDeployedError(id string) *AlreadyDeployedError {
	return &AlreadyDeployedError{ID: id}
}

func (e *AlreadyDeployedError) Error() string {
	return fmt.Sprintf("app '%s' is already deployed", e.ID)
}

func IsAlreadyDeployedError(err error) bool {
	var e *AlreadyDeployedError
	return errors.As(err, &e)
}

// AlreadyLaunchedError is the task counterpart of AlreadyDeployedError.
type AlreadyLaunchedError struct {
	ID    string
	State LaunchState
}

func NewAlreadyLaunchedError(id string, state LaunchState) *AlreadyLaunchedError {
	return &AlreadyLaunchedError{ID: id, State: state}
}

func (e *AlreadyLaunchedError) Error() string {
	return fmt.Sprintf("task %s already exists with a state of %s", e.ID, e.State)
}

func IsAlreadyLaunchedError(err error) bool {
	var e *AlreadyLaunchedError
	return errors.As(err, &e)
}

// NotDeployedError is returned when undeploying or cancelling something the
// cloud does not know about.
type NotDeployedError struct {
	ID string
}

func NewNotDeployedError(id string) *NotDeployedError {
	return &NotDeployedError{ID: id}
}

func (e *NotDeployedError) Error() string {
	return fmt.Sprintf("app '%s' is not deployed", e.ID)
}

func IsNotDeployedError(err error) bool {
	var e *NotDeployedError
	return errors.As(err, &e)
}

// ProviderError wraps any failure surfaced by the compute API.
type ProviderError struct {
	Op  string
	err error
}

func NewProviderError(op string, err error) *ProviderError {
	return &ProviderError{Op: op, err: err}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("openstack %s: %s", e.Op, e.err)
}

func (e *ProviderError) Unwrap() error {
	return e.err
}

func IsProviderError(err error) bool {
	var e *ProviderError
	return errors.As(err, &e)
}

// ConfigurationError reports a malformed property value.
type ConfigurationError struct {
	Key   string
	Value string
	err   error
}

func NewConfigurationError(key, value string, err error) *ConfigurationError {
	return &ConfigurationError{Key: key, Value: value, err: err}
}

func (e *ConfigurationError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("invalid value %q for property %s", e.Value, e.Key)
	}
	return fmt.Sprintf("invalid value %q for property %s: %s", e.Value, e.Key, e.err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.err
}

func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}
