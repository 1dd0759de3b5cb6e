package runtime

import "strconv"

// EnumMember is one member of an enum with its resolved integer value.
type EnumMember struct {
	Name  string
	Value int64
}

// EnumValue carries an enum's name and its ordered member mapping.
type EnumValue struct {
	Name    string
	Members []EnumMember
}

func (e *EnumValue) Type() string { return "Enum" }

func (e *EnumValue) Inspect() string {
	out := "Enum " + e.Name + " { "
	for i, m := range e.Members {
		if i > 0 {
			out += ", "
		}
		out += m.Name + " = " + strconv.FormatInt(m.Value, 10)
	}
	return out + " }"
}

// MemberValue returns the integer value of a member. The second result is
// false when the member does not exist.
func (e *EnumValue) MemberValue(name string) (int64, bool) {
	for _, m := range e.Members {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

// HasMember reports whether the enum declares a member.
func (e *EnumValue) HasMember(name string) bool {
	_, ok := e.MemberValue(name)
	return ok
}
