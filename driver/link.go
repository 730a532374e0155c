package driver

import (
	"bytes"
	"errors"
	"os/exec"
)

// link invokes the system C toolchain to assemble and link the emitted
// .ll files (clang accepts LLVM IR text directly) plus any extra link
// objects and an optional runtime archive into a single executable.
func link(outPath string, llFiles, linkObjects []string, runtimePath string) error {
	args := []string{"-o", outPath}
	args = append(args, llFiles...)
	args = append(args, linkObjects...)
	if runtimePath != "" {
		args = append(args, runtimePath)
	}

	cmd := exec.Command("clang", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return errors.New(stderr.String())
		}
		return err
	}
	return nil
}
