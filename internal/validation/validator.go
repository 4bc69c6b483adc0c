package validation

import (
	"fmt"
	"os"
	"strings"

	"goexplore/adapters/excel"
	"goexplore/domain/core"
	"goexplore/domain/dataset"
	"goexplore/ports"
)

// Result is the verdict of one validation: OK, or a printable message plus
// the structured error behind it.
type Result struct {
	OK      bool
	Message string
	Err     error
}

func pass() Result { return Result{OK: true} }

func fail(err error, format string, args ...interface{}) Result {
	return Result{Message: fmt.Sprintf(format, args...), Err: err}
}

// ValidateFilePath checks that path exists and has a csv, xls or xlsx extension.
// Existence is checked first.
func ValidateFilePath(path string) Result {
	if _, err := os.Stat(path); err != nil {
		return fail(core.NewFileNotFoundError(path), "File '%s' does not exist.", path)
	}
	if !excel.IsSupported(path) {
		return fail(core.NewUnsupportedFormatError(path), "Unsupported file format. Please provide a CSV or Excel file.")
	}
	return pass()
}

// ValidateColumnName checks that name is one of the table's columns
func ValidateColumnName(name string, table *dataset.Table) Result {
	if table == nil || !table.HasColumn(name) {
		return fail(core.NewInvalidColumnError(name), "Column '%s' does not exist in the dataset.", name)
	}
	return pass()
}

// ValidateColumnNames validates names in order and stops at the first failure
func ValidateColumnNames(table *dataset.Table, names ...string) Result {
	for _, name := range names {
		if res := ValidateColumnName(name, table); !res.OK {
			return res
		}
	}
	return pass()
}

// ResolveChoice consumes answers from next until one is in valid. It returns the
// accepted choice and how many answers were read, including the accepted one.
// onInvalid, when set, is called after every rejected answer.
func ResolveChoice(next func() (string, error), valid []string, onInvalid func(rejected string)) (string, int, error) {
	consumed := 0
	for {
		choice, err := next()
		if err != nil {
			return "", consumed, err
		}
		consumed++
		if contains(valid, choice) {
			return choice, consumed, nil
		}
		if onInvalid != nil {
			onInvalid(choice)
		}
	}
}

// ResolveMenuChoice is the pure form of ValidateMenuChoice over a scripted input sequence.
// It returns core.ErrInvalidMenuChoice when the inputs run out before a valid one.
func ResolveMenuChoice(inputs []string, valid []string) (string, int, error) {
	i := 0
	next := func() (string, error) {
		if i >= len(inputs) {
			return "", fmt.Errorf("%w: no valid choice among %d inputs", core.ErrInvalidMenuChoice, len(inputs))
		}
		s := inputs[i]
		i++
		return s, nil
	}
	return ResolveChoice(next, valid, nil)
}

// ValidateMenuChoice returns raw when it is valid. Otherwise it reports the valid
// set and keeps reading from console until a valid choice arrives. There is no
// retry limit; only the end of input (io.EOF) stops it.
func ValidateMenuChoice(raw string, valid []string, console ports.Console) (string, error) {
	first := true
	next := func() (string, error) {
		if first {
			first = false
			return raw, nil
		}
		return console.ReadLine("Enter your choice: ")
	}
	onInvalid := func(string) {
		console.WriteError("Invalid choice. Please select from %s.", FormatOptions(valid))
	}

	choice, _, err := ResolveChoice(next, valid, onInvalid)
	return choice, err
}

// FormatOptions renders a valid set the way the prompts show it: ['1', '2']
func FormatOptions(valid []string) string {
	quoted := make([]string, len(valid))
	for i, v := range valid {
		quoted[i] = "'" + v + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Options returns the digits "1".."n"
func Options(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprint(i + 1)
	}
	return out
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
