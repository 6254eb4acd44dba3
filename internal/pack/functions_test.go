package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sigmundklaa/sqfpack/internal/configtree"
)

func TestFunctionRegistryUnion(t *testing.T) {
	r := FunctionRegistry{
		"p_fnc_CFG": {Tag: "p", Functions: map[string]Function{"init": {}}},
		"e_fnc_CFG": {Tag: "e"},
	}
	replaced := r.Union(FunctionRegistry{
		"p_fnc_CFG": {Tag: "p", Functions: map[string]Function{"child": {}}},
		"e_fnc_CFG": {Tag: "e", Functions: map[string]Function{"x": {}}},
		"c_fnc_CFG": {Tag: "c"},
	})

	assert.Equal(t, []string{"p_fnc_CFG"}, replaced)
	assert.Equal(t, []string{"c_fnc_CFG", "e_fnc_CFG", "p_fnc_CFG"}, r.Keys())
	assert.Equal(t, []string{"child"}, r["p_fnc_CFG"].Names())
}

func TestFunctionRegistryConfig(t *testing.T) {
	r := FunctionRegistry{
		"p_fnc_CFG": {Tag: "p", File: ".", Functions: map[string]Function{
			"boot": {PreInit: true},
			"tick": {},
		}},
		"q_fnc_CFG": {Tag: "q"},
	}

	assert.Equal(t, configtree.Tree{
		"p_fnc_CFG": configtree.Tree{
			"tag": "p",
			"functions": configtree.Tree{
				"file": ".",
				"boot": configtree.Tree{"preInit": 1},
				"tick": configtree.Tree{},
			},
		},
	}, r.Config())
}
