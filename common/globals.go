package common

// AirycVersion is the current Airyc version string.
const AirycVersion = "0.1.0"

// SourceFileExt is the file extension for an Airyc source file.
const SourceFileExt = ".airy"

// ManifestFileName is the name of the optional per-project configuration
// file read by the module loader. It sits next to the entry file and,
// when present, supplies defaults for the output directory, runtime
// archive path, and extra link objects.
const ManifestFileName = "airyc-mod.toml"
