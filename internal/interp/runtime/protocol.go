package runtime

import "fmt"

// ProtocolValue carries a protocol's name and its ordered method
// signatures. Protocols have no storage for implementations.
type ProtocolValue struct {
	Name       string
	Signatures []MethodSignature
}

func (p *ProtocolValue) Type() string    { return "Protocol" }
func (p *ProtocolValue) Inspect() string { return "Protocol " + p.Name }

// IsImplementedBy checks structural conformance of an object against this
// protocol. For each signature in declaration order the object must have a
// method with that name; when the object carries signature metadata for the
// method, parameter count, parameter type names (in order, names ignored)
// and return type name must match. Methods without signature metadata are
// accepted on presence alone, preserving compatibility with builtin
// bindings. External visibility is not part of conformance.
func (p *ProtocolValue) IsImplementedBy(obj *ObjectInstance) bool {
	if obj == nil {
		return false
	}
	for _, want := range p.Signatures {
		if !obj.HasMethod(want.Name) {
			return false
		}
		got := obj.Signature(want.Name)
		if got == nil {
			continue
		}
		if !signatureMatches(&want, got) {
			return false
		}
	}
	return true
}

// ValidationErrors runs the same conformance check as IsImplementedBy but
// accumulates human-readable diagnostics for failed protocol attachment.
func (p *ProtocolValue) ValidationErrors(obj *ObjectInstance) []string {
	var errs []string
	if obj == nil {
		return []string{"object is nil - cannot validate protocol implementation"}
	}

	for _, want := range p.Signatures {
		if !obj.HasMethod(want.Name) {
			errs = append(errs, fmt.Sprintf("missing method: %s", want.Name))
			continue
		}
		got := obj.Signature(want.Name)
		if got == nil {
			// Presence is enough for signature-unchecked methods.
			continue
		}

		if len(got.Parameters) != len(want.Parameters) {
			errs = append(errs, fmt.Sprintf(
				"method %q: parameter count mismatch (expected %d, got %d)",
				want.Name, len(want.Parameters), len(got.Parameters)))
			continue
		}
		for i := range want.Parameters {
			if got.Parameters[i].Type != want.Parameters[i].Type {
				errs = append(errs, fmt.Sprintf(
					"method %q: parameter %d type mismatch (expected %q, got %q)",
					want.Name, i, want.Parameters[i].Type, got.Parameters[i].Type))
			}
		}
		if got.ReturnType != want.ReturnType {
			errs = append(errs, fmt.Sprintf(
				"method %q: return type mismatch (expected %q, got %q)",
				want.Name, want.ReturnType, got.ReturnType))
		}
	}

	return errs
}

func signatureMatches(want *MethodSignature, got *MethodSignature) bool {
	if len(got.Parameters) != len(want.Parameters) {
		return false
	}
	for i := range want.Parameters {
		// Parameter names are irrelevant, only types must match.
		if got.Parameters[i].Type != want.Parameters[i].Type {
			return false
		}
	}
	return got.ReturnType == want.ReturnType
}
