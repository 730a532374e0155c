// Command airyc compiles a single Airyc entry file into a native
// executable: load its module graph, analyze it, lower it to LLVM IR, and
// link the result through the system C toolchain.
package main

import (
	"os"

	"github.com/ComedicChimera/olive"

	"github.com/widsnoy/airyc/driver"
	"github.com/widsnoy/airyc/report"
)

func main() {
	cli := olive.NewCLI("airyc", "airyc compiles Airyc source files to native executables", true)
	cli.AddStringArg("input", "i", "the entry source file to compile", true)
	cli.AddStringArg("output", "o", "the directory to write generated IR and the linked executable to", false)
	cli.AddStringArg("runtime", "r", "a runtime archive to link against", false)
	cli.AddStringArg("opt", "O", "optimization level (accepted, not yet implemented)", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	report.InitReporter(logLevelFromEnv())

	profile := driver.Profile{
		EntryPath:   result.Arguments["input"].(string),
		OutDir:      stringArg(result, "output"),
		RuntimePath: stringArg(result, "runtime"),
		OptLevel:    stringArg(result, "opt"),
	}

	if !driver.Compile(profile) {
		report.RenderAll()
		os.Exit(1)
	}

	report.RenderAll()
}

// stringArg reads an optional olive string argument, returning "" if the
// user never supplied it.
func stringArg(result *olive.ArgParseResult, name string) string {
	if v, ok := result.Arguments[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// logLevelFromEnv honors a RUST_LOG-style environment variable for
// diagnostic verbosity, since the core itself consumes no environment
// variables of its own.
func logLevelFromEnv() int {
	switch os.Getenv("RUST_LOG") {
	case "silent", "off":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	default:
		return report.LogLevelVerbose
	}
}
