package jsregex

import (
	"fmt"

	"go.dw1.io/x/jsregex/internal/json"
)

// wire is the serialized form of a Regexp, the same pair a JavaScript
// RegExp exposes as source and flags.
type wire struct {
	Source string `json:"source"`
	Flags  string `json:"flags"`
}

// MarshalJSON encodes r as {"source": ..., "flags": ...}.
func (r *Regexp) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{Source: r.source, Flags: r.flags.String()})
}

// UnmarshalJSON compiles the encoded pattern with the package-level compiler.
func (r *Regexp) UnmarshalJSON(data []byte) error {
	if r == nil {
		return fmt.Errorf("jsregex: UnmarshalJSON on nil pointer")
	}

	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	flags, err := ParseFlags(w.Flags)
	if err != nil {
		return &Error{Pattern: w.Source, Kind: ErrInvalidFlags, Err: err}
	}

	re, err := Compile(w.Source, flags)
	if err != nil {
		return err
	}

	*r = *re
	return nil
}
