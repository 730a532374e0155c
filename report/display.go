package report

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// RenderAll prints every collected diagnostic to stdout, ordered by report
// order, and prints a concluding summary line. It is normally called once,
// by the driver, after a compile phase has finished.
func RenderAll() {
	for _, d := range Diagnostics() {
		render(d)
	}

	if AnyErrors() {
		pterm.Error.Println(fmt.Sprintf("build failed: %d error(s)", rep.errorCount))
	}
}

// render prints a single diagnostic with a caret-underlined source
// excerpt, using pterm-styled labels instead of bare fmt.Printf.
func render(d *Diagnostic) {
	label := pterm.FgLightYellow.Sprint("warning")
	if d.Severity == SeverityError {
		label = pterm.FgLightRed.Sprint("error")
	}

	path := d.ReprPath
	if path == "" {
		path = d.AbsPath
	}

	if d.Span == nil {
		fmt.Printf("%s: %s[%s]: %s\n\n", path, label, d.Kind, d.Message)
		return
	}

	fmt.Printf("%s:%d:%d: %s[%s]: %s\n", path, d.Span.StartLine+1, d.Span.StartCol+1, label, d.Kind, d.Message)
	displaySourceText(d.AbsPath, d.Span)

	for _, sec := range d.Secondary {
		fmt.Printf("%s:%d:%d: %s\n", path, sec.StartLine+1, sec.StartCol+1, pterm.FgGray.Sprint("note: see also"))
		displaySourceText(d.AbsPath, sec)
	}

	if d.Help != "" {
		fmt.Println(pterm.FgLightBlue.Sprint("help: ") + d.Help)
	}

	fmt.Println()
}

// displaySourceText displays a segment of source text defined by a text
// span, underlined with carets.
func displaySourceText(absPath string, span *TextSpan) {
	file, err := os.Open(absPath)
	if err != nil {
		return
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if len(lines) == 0 {
		return
	}

	minIndent := math.MaxInt
	for _, line := range lines {
		indent := 0
		for _, c := range line {
			if c == ' ' {
				indent++
			} else {
				break
			}
		}
		if indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent == math.MaxInt {
		minIndent = 0
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmt := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Printf(lineNumFmt, i+span.StartLine+1)
		if minIndent <= len(line) {
			fmt.Println(line[minIndent:])
		} else {
			fmt.Println(line)
		}

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		var prefix int
		if i == 0 {
			prefix = span.StartCol - minIndent
		}
		if prefix < 0 {
			prefix = 0
		}

		var suffix int
		if i == len(lines)-1 {
			suffix = len(line) - span.EndCol - 1
		}
		if suffix < 0 {
			suffix = 0
		}

		fmt.Print(strings.Repeat(" ", prefix))

		carets := len(line) - suffix - prefix - minIndent
		if carets < 1 {
			carets = 1
		}
		fmt.Println(pterm.FgLightRed.Sprint(strings.Repeat("^", carets)))
	}
}
