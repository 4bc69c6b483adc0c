package missing

import (
	"errors"
	"strings"

	"goexplore/domain/core"
	"goexplore/domain/dataset"
	"goexplore/internal"
	"goexplore/internal/report"
	"goexplore/internal/validation"
	"goexplore/ports"
)

var menuLines = []string{
	"1. View missing data summary",
	"2. Drop rows with missing values",
	"3. Drop columns with missing values",
	"4. Fill missing values with a specific value",
	"5. Fill missing values with mean/median/mode",
	"6. Return to main menu",
}

// Editor runs the interactive missing-data submenu against a table
type Editor struct {
	console ports.Console
	printer *report.Printer
	logger  *internal.Logger
}

// NewEditor creates an editor that talks through console
func NewEditor(console ports.Console, logger *internal.Logger) *Editor {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Editor{
		console: console,
		printer: report.NewPrinter(console.Writer()),
		logger:  logger,
	}
}

// Run shows the submenu once, performs the chosen action on table in place
// and reports the outcome. Only console read errors are returned.
func (e *Editor) Run(table *dataset.Table) error {
	e.console.WriteLine("")
	e.console.WriteLine("Missing Data Handling Options:")
	for _, line := range menuLines {
		e.console.WriteLine(line)
	}

	raw, err := e.console.ReadLine("Choose an option (1-6): ")
	if err != nil {
		return err
	}
	choice, err := validation.ValidateMenuChoice(raw, validation.Options(len(menuLines)), e.console)
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		e.console.WriteLine("")
		e.printer.Missing(Summarize(table))
	case "2":
		removed := DropRows(table)
		e.logger.Info("[MissingData] dropped %d rows", removed)
		e.console.WriteSuccess("Rows with missing values have been dropped.")
		e.console.WriteLine("%d rows removed, %d remaining.", removed, table.NumRows())
	case "3":
		removed := DropColumns(table)
		e.logger.Info("[MissingData] dropped columns %v", removed)
		e.console.WriteSuccess("Columns with missing values have been dropped.")
		if len(removed) > 0 {
			e.console.WriteLine("Removed: %s", strings.Join(removed, ", "))
		}
	case "4":
		literal, err := e.console.ReadLine("Enter the value to fill missing data: ")
		if err != nil {
			return err
		}
		filled := FillConstant(table, literal)
		e.logger.Info("[MissingData] filled %d cells with %q", filled, literal)
		e.console.WriteSuccess("Missing values have been filled with the specified value.")
	case "5":
		return e.fillStatistic(table)
	case "6":
		e.console.WriteLine("Returning to the main menu.")
	}
	return nil
}

func (e *Editor) fillStatistic(table *dataset.Table) error {
	raw, err := e.console.ReadLine("Choose a method (mean/median/mode): ")
	if err != nil {
		return err
	}

	method, err := ParseMethod(raw)
	if err != nil {
		e.console.WriteError("Invalid method. Returning to the menu.")
		return nil
	}

	result, err := FillStatistic(table, method)
	if err != nil {
		return err
	}
	for _, skip := range result.Skipped {
		switch {
		case errors.Is(skip.Err, core.ErrNonNumericColumn):
			e.console.WriteError("Column '%s' skipped: %s requires numeric values.", skip.Column, method)
		default:
			e.console.WriteError("Column '%s' skipped: %v", skip.Column, skip.Err)
		}
	}
	e.logger.Info("[MissingData] %s fill wrote %d cells across %d columns", method, result.Cells(), len(result.Filled))
	e.console.WriteSuccess("Missing values have been filled using the %s method.", method)
	return nil
}
