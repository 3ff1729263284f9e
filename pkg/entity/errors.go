package entity

import "fmt"

// ConfigurationError is returned by entity constructors when a parameter
// would produce an invalid entity. No entity is created when it is returned.
type ConfigurationError struct {
	Entity string
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s configuration: %s=%v %s", e.Entity, e.Field, e.Value, e.Reason)
}

func configError(entity, field string, value any, reason string) error {
	return &ConfigurationError{Entity: entity, Field: field, Value: value, Reason: reason}
}
