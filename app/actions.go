package app

import (
	"errors"
	"strings"

	"goexplore/domain/chart"
	"goexplore/domain/core"
	"goexplore/internal/analysis"
	"goexplore/internal/validation"
	"goexplore/internal/visualize"
)

// chartX prompts for a single column and draws kind over it
func (e *Explorer) chartX(s *Session, kind chart.Kind, prompt string) error {
	x, err := e.console.ReadLine(prompt)
	if err != nil {
		return err
	}
	if !e.checkColumns(s, x) {
		return nil
	}
	e.draw(s, visualize.Request{Kind: string(kind), ColumnX: x})
	return nil
}

// chartXY prompts for an x and a y column. When optionalY is set an empty y
// answer draws the single-column form of the chart.
func (e *Explorer) chartXY(s *Session, kind chart.Kind, optionalY bool) error {
	x, err := e.console.ReadLine("Enter the column name for the x-axis: ")
	if err != nil {
		return err
	}

	prompt := "Enter the column name for the y-axis: "
	if optionalY {
		prompt = "Enter the column name for the y-axis (press Enter to skip): "
	}
	y, err := e.console.ReadLine(prompt)
	if err != nil {
		return err
	}

	names := []string{x}
	if y != "" || !optionalY {
		names = append(names, y)
	}
	if !e.checkColumns(s, names...) {
		return nil
	}
	e.draw(s, visualize.Request{Kind: string(kind), ColumnX: x, ColumnY: y})
	return nil
}

func (e *Explorer) checkColumns(s *Session, names ...string) bool {
	if res := validation.ValidateColumnNames(s.Table, names...); !res.OK {
		e.logger.Debug("[Explorer] column check failed: %v", res.Err)
		e.console.WriteError(res.Message)
		return false
	}
	return true
}

func (e *Explorer) draw(s *Session, req visualize.Request) {
	path, err := e.dispatcher.Dispatch(s.Table, req)
	if err != nil {
		e.fail(req.Kind+" chart", err)
		return
	}
	e.console.WriteSuccess("Chart saved to %s", path)
}

func (e *Explorer) correlation(s *Session) {
	m, err := analysis.Correlation(s.Table)
	if err != nil {
		e.fail("correlation", err)
		return
	}
	e.printer.Correlation(m)

	path, err := e.dispatcher.RenderMatrix(m.Columns, m.Values)
	if err != nil {
		e.fail("correlation heatmap", err)
		return
	}
	e.console.WriteSuccess("Chart saved to %s", path)
}

// statistics serves the analysis submenu once and returns to the main menu
func (e *Explorer) statistics(s *Session) error {
	choice, err := e.menu("Statistical Analysis Options:", statsMenu, "Choose an option (1-5): ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		e.printer.Summary(analysis.Describe(s.Table))
	case "2":
		return e.ttest(s)
	case "3":
		return e.regression(s)
	case "4":
		return e.export(s)
	case "5":
		e.console.WriteLine("Returning to the main menu.")
	}
	return nil
}

func (e *Explorer) ttest(s *Session) error {
	a, err := e.console.ReadLine("Enter the first numerical column for hypothesis testing: ")
	if err != nil {
		return err
	}
	b, err := e.console.ReadLine("Enter the second numerical column for hypothesis testing: ")
	if err != nil {
		return err
	}
	if !e.checkColumns(s, a, b) {
		return nil
	}

	res, err := analysis.TTest(s.Table, a, b, e.equalVar)
	if err != nil {
		e.fail("t-test", err)
		return nil
	}
	e.printer.TTest(res)
	return nil
}

func (e *Explorer) regression(s *Session) error {
	x, err := e.console.ReadLine("Enter the independent variable (x-axis): ")
	if err != nil {
		return err
	}
	y, err := e.console.ReadLine("Enter the dependent variable (y-axis): ")
	if err != nil {
		return err
	}
	if !e.checkColumns(s, x, y) {
		return nil
	}

	res, err := analysis.Regress(s.Table, x, y)
	if err != nil {
		e.fail("regression", err)
		return nil
	}
	e.printer.Regression(res)
	return nil
}

func (e *Explorer) export(s *Session) error {
	path, err := e.console.ReadLine("Enter the path to save the summary (JSON): ")
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		e.console.WriteError("No output path given.")
		return nil
	}

	if err := analysis.ExportSummary(analysis.Describe(s.Table), path); err != nil {
		e.fail("export", err)
		return nil
	}
	e.console.WriteSuccess("Summary exported to %s", path)
	return nil
}

// fail reports an action error and leaves the menu loop running
func (e *Explorer) fail(action string, err error) {
	if core.IsRecoverable(err) {
		e.logger.Warn("[Explorer] %s failed: %v", action, err)
	} else {
		e.logger.Error("[Explorer] %s failed: %v", action, err)
	}
	e.console.WriteError("Error: %s", describe(err))
}

func describe(err error) string {
	switch {
	case errors.Is(err, core.ErrNonNumericColumn):
		return "the selected columns must be numeric (" + err.Error() + ")."
	case errors.Is(err, core.ErrInsufficientData):
		return "not enough data for this analysis (" + err.Error() + ")."
	}
	return err.Error()
}
