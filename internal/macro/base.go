package macro

// Base returns the helper macros every table is seeded with.
func Base() []Macro {
	return []Macro{
		{Name: "DOUBLES", Args: Args(2), Value: "ARG_1##_##ARG_2"},
		{Name: "TRIPLES", Args: Args(3), Value: "ARG_1##_##ARG_2##_##ARG_3"},
		{Name: "QUOTE", Args: Args(1), Value: "#ARG_1"},
		{Name: "GVAR", Args: Args(1), Value: "DOUBLES(" + TagMacro + ",ARG_1)"},
		{Name: "QGVAR", Args: Args(1), Value: "QUOTE(GVAR(ARG_1))"},
		{Name: "FUNC", Args: Args(1), Value: "TRIPLES(" + TagMacro + ",fnc,ARG_1)"},
		{Name: "QFUNC", Args: Args(1), Value: "QUOTE(FUNC(ARG_1))"},
		{Name: "QTAG", Value: "QUOTE(" + TagMacro + ")"},
		{Name: "REST", Args: Args(1), Value: "(_this select [ARG_1])"},
	}
}
