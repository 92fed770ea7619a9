package binding

import (
	"errors"
	"fmt"

	"solr-binder/document"
)

var (
	// ErrConfiguration marks errors caused by how a target type or the binder
	// itself is set up: a non-string map key, a setter bound for writing with
	// no matching getter, an adapter used before its resolution completed.
	ErrConfiguration = errors.New("invalid binding configuration")

	// ErrConversion marks errors caused by the shape of a raw document value:
	// an unparseable numeric string, an out-of-range number, an unknown enum
	// name or ordinal.
	ErrConversion = errors.New("cannot convert value")

	// ErrNoAdapter is returned when no factory in the chain produces an
	// adapter for a requested type.
	ErrNoAdapter = errors.New("no adapter for type")
)

// ConfigError reports a configuration problem on a target type. Member is
// empty when the problem concerns the type as a whole.
type ConfigError struct {
	Type   string
	Member string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("%s.%s: %s", e.Type, e.Member, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// ConversionError reports a raw value that cannot be coerced to a target
// type. Kind is the runtime kind of the offending raw value; Member and
// Declaring name the bound member being converted and its declaring type when
// the failure happens inside a composite adapter.
type ConversionError struct {
	Type      string
	Declaring string
	Member    string
	Kind      document.Kind
	Reason    string
	Cause     error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %s to %s", e.Kind, e.Type)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	switch {
	case e.Declaring != "" && e.Member != "":
		return fmt.Sprintf("%s.%s: %s", e.Declaring, e.Member, msg)
	case e.Member != "":
		return fmt.Sprintf("member %q: %s", e.Member, msg)
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrConversion
}

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

// ResolutionError reports that the factory chain has no adapter for a type.
type ResolutionError struct {
	Type string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no adapter for type %s", e.Type)
}

func (e *ResolutionError) Unwrap() error { return ErrNoAdapter }

// conversionErr builds a ConversionError for a raw value.
func conversionErr(target string, raw any, reason string) error {
	return &ConversionError{Type: target, Kind: document.KindOf(raw), Reason: reason}
}

// memberErr tags an adapter failure with the declaring type and member name,
// unless it is already tagged.
func memberErr(typeName, member string, err error) error {
	var conv *ConversionError
	if errors.As(err, &conv) && conv.Member == "" {
		return &ConversionError{
			Type:      conv.Type,
			Declaring: typeName,
			Member:    member,
			Kind:      conv.Kind,
			Reason:    conv.Reason,
			Cause:     conv.Cause,
		}
	}
	return fmt.Errorf("%s.%s: %w", typeName, member, err)
}
