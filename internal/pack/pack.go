// Package pack resolves a tree of script-source directories into modules and
// exports them as a deployable build tree.
//
// A Session owns one build: the package hierarchy, the identity registry that
// guarantees a single Module per directory, and the collaborators used to encode
// aggregate configs and parse resource files. Export performs one depth-first
// pass that writes macro include-files, rewritten sources, copied assets, and
// one aggregate config per package unit.
package pack

const (
	// ReservedPrefix marks source files that are neither registered as
	// functions nor renamed on export.
	ReservedPrefix = "_"

	// SourceExt is the extension of script sources.
	SourceExt = ".sqf"

	// ResourceExt is the extension handled by the resource parser.
	ResourceExt = ".aewl"

	// SidecarExt is the extension of config sidecar files.
	SidecarExt = ".json"

	// FunctionFilePrefix is prepended to exported source file names.
	FunctionFilePrefix = "fn_"

	// MacroFileSuffix is appended to a module's source name to form its
	// macro include-file name.
	MacroFileSuffix = ".incl.h"

	// AddonConfigFile is the aggregate config file of a deployable addon.
	AddonConfigFile = "config.cpp"

	// MissionConfigFile is the aggregate config file of a non-addon package unit.
	MissionConfigFile = "description.ext"

	// PrefixFile holds the naming tag of a deployable addon.
	PrefixFile = "$PBOPREFIX$"

	// ArtifactExt is the extension of a packaged addon artifact.
	ArtifactExt = "pbo"

	// RequiredAddonsKey is the addon details key listing package dependencies.
	RequiredAddonsKey = "requiredAddons"

	// ResourceTitlesKey nests resource fragments marked as titles.
	ResourceTitlesKey = "RscTitles"

	// FunctionsConfigKey holds the function registry in an aggregate config.
	FunctionsConfigKey = "CfgFunctions"

	// PatchesConfigKey holds addon details in an aggregate config.
	PatchesConfigKey = "CfgPatches"

	// registryEntryFunction is the function name whose real name keys a
	// module's function registry entry.
	registryEntryFunction = "CFG"
)

// DefaultFileTypes lists the extensions copied verbatim on export.
var DefaultFileTypes = []string{
	".hpp", ".h", ".inc", ".ext", ".sqm", ".paa", ".jpg", ".png",
	".ogg", ".wss", ".p3d", ".rvmat", ".rtm", ".bikb", ".fsm",
}
